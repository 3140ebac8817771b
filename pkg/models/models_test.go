package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeModel(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "control_sd15_canny.pth", []byte("canny weights"))
	writeModel(t, dir, "control_sd15_depth.safetensors", []byte("depth weights"))
	writeModel(t, dir, "readme.txt", []byte("not a model"))

	registry := New(dir)
	names, err := registry.Update()

	if assert.NoError(t, err) {
		assert.Len(t, names, 2)
		assert.Contains(t, names[0], "control_sd15_canny [")
		assert.Contains(t, names[1], "control_sd15_depth [")
	}
	assert.Equal(t, 2, registry.Len())
}

func TestUpdateMissingDir(t *testing.T) {
	registry := New(filepath.Join(t.TempDir(), "nope"))
	names, err := registry.Update()

	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestHas(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "control_sd15_canny.pth", []byte("canny weights"))

	registry := New(dir)
	display := DisplayName(path)

	assert.True(t, registry.Has(display))
	assert.True(t, registry.Has("control_sd15_canny"))
	assert.True(t, registry.Has("None"))
	assert.True(t, registry.Has(""))
	assert.False(t, registry.Has("control_sd15_depth"))
}

func TestHash(t *testing.T) {
	dir := t.TempDir()
	content := []byte("canny weights")
	path := writeModel(t, dir, "control_sd15_canny.pth", content)

	// Small files fall back to hashing the whole content.
	sum := sha256.Sum256(content)
	want := hex.EncodeToString(sum[:])[:8]

	assert.Equal(t, want, Hash(path))
	assert.Equal(t, fmt.Sprintf("control_sd15_canny [%s]", want), DisplayName(path))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "control_sd15_canny", Stem("control_sd15_canny [fef5e48e]"))
	assert.Equal(t, "control_sd15_canny", Stem("control_sd15_canny"))
	assert.Equal(t, "[fef5e48e]", Stem("[fef5e48e]"))
}

func TestFromEnv(t *testing.T) {
	registry := FromEnv("a, b ,,c")
	assert.Equal(t, []string{"a", "b", "c"}, registry.dirs)
}
