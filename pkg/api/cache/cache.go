package cache

import (
	"math"
	"time"

	"github.com/labstack/echo/v4"
)

type Cache interface {
	Get(key string) (*Item, error)
	Set(key string, item *Item, duration time.Duration) error
}

type Item struct {
	Blob       []byte    `json:"blob,omitempty"`
	LastAccess time.Time `json:"last_access"`
	MimeType   string    `json:"mime_type,omitempty"`
	HitCount   int       `json:"hit_count,omitempty"`
}

const (
	Hour = time.Hour
	Day  = 24 * time.Hour
	Week = 7 * Day
)

func (item *Item) Accessed() {
	backoff := int64(min(math.Pow(2, float64(item.HitCount-1)), 24*time.Hour.Seconds()))
	item.LastAccess = time.Now().Add(time.Duration(backoff) * time.Second)
	item.HitCount += 1
}

// SwitchCache prefers the redis client a middleware put on the context and
// falls back to the in-process cache.
func SwitchCache(c echo.Context) Cache {
	if r, ok := c.Get("redis").(*Redis); ok {
		return r
	}
	return GetLocalCache(c)
}
