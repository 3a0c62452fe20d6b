package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory query result caching with TTL eviction.
type MemoryCache struct {
	cache  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCache creates a new memory cache.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a cached result for the query.
func (c *MemoryCache) Get(query string) ([]byte, bool) {
	if val, found := c.cache.Get(Key(query)); found {
		c.hits.Add(1)
		return val.([]byte), true
	}
	c.misses.Add(1)
	return nil, false
}

// Set stores a query result with the given TTL.
func (c *MemoryCache) Set(query string, value []byte, ttl time.Duration) error {
	c.cache.Set(Key(query), value, ttl)
	return nil
}

// Delete removes a cached result.
func (c *MemoryCache) Delete(query string) error {
	c.cache.Delete(Key(query))
	return nil
}

// Clear removes all cached results and resets hit/miss counters.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
	return nil
}

// HitRate returns the fraction of lookups served from cache.
func (c *MemoryCache) HitRate() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
