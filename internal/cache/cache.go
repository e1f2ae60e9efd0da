// Package cache stores rendered catalog responses so repeated list calls skip storage.
package cache

import (
	"context"
	"time"
)

// Cache is satisfied by MemoryCache and RedisCache.
type Cache interface {
	// Get returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type CacheError string

func (e CacheError) Error() string { return string(e) }

const ErrCacheMiss CacheError = "cache miss"

// Noop never stores anything. It is used when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error)                { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error                      { return nil }
