package cache

import (
	"testing"

	"github.com/labstack/gommon/bytes"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLocalCache(maxItems int) *LocalCache {
	return &LocalCache{
		items:    make(map[string]*Item),
		maxSize:  bytes.MiB,
		maxItems: maxItems,
	}
}

func TestLocalCacheGetSet(t *testing.T) {
	cache := newLocalCache(8)

	err := cache.Set("image/png:detect:canny", &Item{Blob: []byte("annotated"), MimeType: "image/png"}, Hour)
	assert.NoError(t, err)

	item, err := cache.Get("image/png:detect:canny")
	if assert.NoError(t, err) {
		assert.Equal(t, []byte("annotated"), item.Blob)
		assert.Equal(t, 1, item.HitCount)
	}
}

func TestLocalCacheOverwrites(t *testing.T) {
	cache := newLocalCache(8)

	key := "application/json:controlnet:model_list"
	assert.NoError(t, cache.Set(key, &Item{Blob: []byte(`["old"]`), MimeType: "application/json"}, Hour))
	assert.NoError(t, cache.Set(key, &Item{Blob: []byte(`["old","new"]`), MimeType: "application/json"}, Hour))

	item, err := cache.Get(key)
	if assert.NoError(t, err) {
		assert.Equal(t, []byte(`["old","new"]`), item.Blob)
	}
	assert.Equal(t, int64(len(`["old","new"]`)), cache.currentSize)
}

func TestLocalCacheMiss(t *testing.T) {
	cache := newLocalCache(8)

	_, err := cache.Get("missing")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestLocalCachePrefixesMimeType(t *testing.T) {
	cache := newLocalCache(8)

	err := cache.Set("detect:canny", &Item{Blob: []byte("annotated"), MimeType: "image/png"}, Hour)
	assert.NoError(t, err)

	_, err = cache.Get("image/png:detect:canny")
	assert.NoError(t, err)
}

func TestLocalCacheEvicts(t *testing.T) {
	cache := newLocalCache(2)

	assert.NoError(t, cache.Set("image/png:a", &Item{Blob: []byte("a"), MimeType: "image/png"}, -Hour))
	assert.NoError(t, cache.Set("image/png:b", &Item{Blob: []byte("b"), MimeType: "image/png"}, -Hour))
	assert.NoError(t, cache.Set("image/png:c", &Item{Blob: []byte("c"), MimeType: "image/png"}, Hour))

	// The expired entries are gone, the fresh one survives.
	_, err := cache.Get("image/png:c")
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(cache.items), 2)
}

func TestAccessedBackoff(t *testing.T) {
	item := &Item{}
	item.Accessed()
	first := item.LastAccess
	item.Accessed()

	assert.Equal(t, 2, item.HitCount)
	assert.True(t, item.LastAccess.After(first) || item.LastAccess.Equal(first))
}
