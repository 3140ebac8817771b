package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func init() {
	if e := os.Getenv("REDIS_HOST"); e != "" {
		addr = e
	}

	client = NewRedisClient()

	_, err := client.ping()
	if err == nil {
		Initialized = true
	}

	if !Initialized {
		log.Printf("warning: redis not initialized")
	} else {
		log.Printf("redis initialized: %v", addr)
	}
}

type Redis redis.Client

var client *Redis

var addr = "localhost:6379"

var ctx = context.Background()

var Initialized bool

func RedisClient() *Redis {
	return client
}

func NewRedisClient() *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		Username: func() string {
			u := os.Getenv("REDIS_USERNAME")
			if u != "" {
				return u
			}
			return "default"
		}(),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB: func() int {
			d := os.Getenv("REDIS_DB")
			if i, err := strconv.Atoi(d); err == nil {
				return i
			}
			return 0
		}(),
	})
	return (*Redis)(client)
}

func (r *Redis) ping() (string, error) {
	return (*redis.Client)(r).Ping(ctx).Result()
}

func (r *Redis) Get(key string) (*Item, error) {
	val, err := (*redis.Client)(r).Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key %s not found %w", key, err)
	}
	if err != nil {
		return nil, err
	}

	var mimeType string
	if i := strings.Index(key, ":"); i > 0 {
		mimeType = key[:i]
	}
	if mimeType == "" {
		mimeType = echo.MIMEOctetStream
	}

	return &Item{
		Blob:       val,
		LastAccess: time.Now().UTC(),
		MimeType:   mimeType,
	}, nil
}

func (r *Redis) Set(key string, item *Item, duration time.Duration) error {
	if !strings.HasPrefix(key, item.MimeType) {
		key = fmt.Sprintf("%s:%s", item.MimeType, key)
	}

	cmd := (*redis.Client)(r).Set(ctx, key, item.Blob, duration)
	if cmd.Err() != nil {
		return fmt.Errorf("failed to set item: %w", cmd.Err())
	}

	return nil
}
