// Package cache memoizes compiled type patterns for the lifetime of the
// process so that identical patterns compile once.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// Cache defines the interface for compiled-pattern caching
type Cache interface {
	Get(key string) (*regexp.Regexp, bool)
	Set(key string, re *regexp.Regexp)
	Delete(key string)
	Clear()
}

// CacheKey generates a cache key from an anchored pattern
func CacheKey(pattern string) string {
	hash := sha256.Sum256([]byte(pattern))
	return "csvtypes:v1:" + hex.EncodeToString(hash[:])
}
