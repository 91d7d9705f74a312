package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements Cache interface using in-memory storage
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache. Expired items are purged
// every two TTLs.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &MemoryCache{store: gocache.New(defaultTTL, 2*defaultTTL)}
}

// Get retrieves a value from cache
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, found := m.store.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	return v.([]byte), nil
}

// Set stores a value in cache
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

// Delete removes a value from cache
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Clear removes all keys with the given prefix
func (m *MemoryCache) Clear(_ context.Context, prefix string) error {
	for key := range m.store.Items() {
		if strings.HasPrefix(key, prefix) {
			m.store.Delete(key)
		}
	}
	return nil
}

func (m *MemoryCache) Close() error {
	m.store.Flush()
	return nil
}
