// Package cache provides the in-process assessment cache and the tiered
// cache that fronts Redis with it.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
)

var _ service.AssessmentCache = (*LocalCache)(nil)

// LocalCache is an in-process AssessmentCache with expiring entries.
type LocalCache struct {
	items *gocache.Cache
}

// NewLocalCache creates a local cache. Non-positive values use the defaults.
func NewLocalCache(ttl, cleanupInterval time.Duration) *LocalCache {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = constants.DefaultCacheCleanupInterval
	}
	return &LocalCache{items: gocache.New(ttl, cleanupInterval)}
}

func (c *LocalCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	return data, ok, nil
}

func (c *LocalCache) Set(_ context.Context, key string, value []byte) error {
	c.items.SetDefault(key, value)
	return nil
}

func (c *LocalCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *LocalCache) Len() int {
	return c.items.ItemCount()
}

// Flush removes every entry.
func (c *LocalCache) Flush() {
	c.items.Flush()
}
