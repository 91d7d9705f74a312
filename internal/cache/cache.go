package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/config"
)

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the cache interface
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key with the given prefix.
	Clear(ctx context.Context, prefix string) error
	Close() error
}

// New builds the cache selected by configuration. A disabled cache is a
// no-op so callers never branch on it.
func New(cfg config.CacheConfig, redisCfg config.RedisConfig) (Cache, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	switch cfg.Type {
	case "redis":
		return NewRedisCache(redisCfg.URL)
	case "memory", "":
		return NewMemoryCache(cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache type %q", cfg.Type)
	}
}

// Key joins the parts of a cache key.
func Key(parts ...string) string {
	key := "hospital"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// GetJSON decodes a cached value into out.
func GetJSON(ctx context.Context, c Cache, key string, out interface{}) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error)              { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error                     { return nil }
func (Noop) Clear(context.Context, string) error                      { return nil }
func (Noop) Close() error                                             { return nil }
