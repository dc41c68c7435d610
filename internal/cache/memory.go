package cache

import (
	"regexp"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory pattern caching
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache. A zero defaultTTL keeps entries
// until they are deleted.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if defaultTTL == 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a compiled pattern from the cache
func (c *MemoryCache) Get(key string) (*regexp.Regexp, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(*regexp.Regexp), true
	}
	return nil, false
}

// Set stores a compiled pattern with the default TTL
func (c *MemoryCache) Set(key string, re *regexp.Regexp) {
	c.cache.SetDefault(key, re)
}

// Delete removes a pattern from the cache
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all patterns from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached patterns, expired ones included
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

// Compile returns the compiled form of pattern, compiling and storing it on
// a miss. Compile errors are not cached.
func Compile(c Cache, pattern string) (*regexp.Regexp, error) {
	key := CacheKey(pattern)
	if re, ok := c.Get(key); ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.Set(key, re)
	return re, nil
}
