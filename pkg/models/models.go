// Package models keeps the registry of conditioning models available to the
// host pipeline. The registry only knows filenames; loading the weights is
// the host's business.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var extensions = map[string]bool{
	".pt":          true,
	".pth":         true,
	".ckpt":        true,
	".safetensors": true,
}

type Registry struct {
	dirs  []string
	mu    sync.RWMutex
	names []string
}

func New(dirs ...string) *Registry {
	var cleaned []string
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir != "" {
			cleaned = append(cleaned, dir)
		}
	}
	return &Registry{dirs: cleaned}
}

// FromEnv builds a registry from a comma separated directory list.
func FromEnv(env string) *Registry {
	return New(strings.Split(env, ",")...)
}

// Names returns the display names of the known models, scanning the
// directories on first use.
func (r *Registry) Names() ([]string, error) {
	r.mu.RLock()
	names := r.names
	r.mu.RUnlock()
	if names != nil {
		return names, nil
	}
	return r.Update()
}

// Update rescans the model directories. Unreadable entries are skipped.
func (r *Registry) Update() ([]string, error) {
	var names []string
	for _, dir := range r.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error reading model directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !extensions[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			names = append(names, DisplayName(filepath.Join(dir, name)))
		}
	}
	sort.Strings(names)

	r.mu.Lock()
	if names == nil {
		names = []string{}
	}
	r.names = names
	r.mu.Unlock()
	return names, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Has reports whether name matches a known model, with or without the
// bracketed hash suffix. The "None" sentinel always passes.
func (r *Registry) Has(name string) bool {
	if name == "" || name == "None" {
		return true
	}

	names, err := r.Names()
	if err != nil {
		return false
	}
	for _, known := range names {
		if known == name || Stem(known) == name {
			return true
		}
	}
	return false
}

// DisplayName formats a model file as "stem [shorthash]".
func DisplayName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if hash := Hash(path); hash != "" {
		return fmt.Sprintf("%s [%s]", stem, hash)
	}
	return stem
}

// Stem strips the bracketed hash suffix from a display name.
func Stem(name string) string {
	if i := strings.LastIndex(name, " ["); i > 0 && strings.HasSuffix(name, "]") {
		return name[:i]
	}
	return name
}

const (
	hashOffset = 0x100000
	hashLength = 0x10000
)

// Hash is the webui short model hash: sha256 over the 0x10000 bytes at
// offset 0x100000, first 8 hex characters. Files smaller than the offset
// hash their whole content instead.
func Hash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := sha256.New()
	if _, err := f.Seek(hashOffset, io.SeekStart); err == nil {
		if n, _ := io.CopyN(h, f, hashLength); n > 0 {
			return hex.EncodeToString(h.Sum(nil))[:8]
		}
	}

	h.Reset()
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}
