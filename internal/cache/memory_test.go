package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	k1 := CacheKey(`^(?:\d+)$`)
	k2 := CacheKey(`^(?:\d+)$`)
	k3 := CacheKey(`^(?:.*)$`)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, "csvtypes:v1:"))
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(0, time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	re, err := Compile(c, `^\d$`)
	require.NoError(t, err)

	got, found := c.Get(CacheKey(`^\d$`))
	require.True(t, found)
	assert.Same(t, re, got)
	assert.Equal(t, 1, c.Len())
}

func TestCompile_ReusesEntry(t *testing.T) {
	c := NewMemoryCache(0, time.Minute)

	first, err := Compile(c, `^a+$`)
	require.NoError(t, err)
	second, err := Compile(c, `^a+$`)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestCompile_ErrorNotCached(t *testing.T) {
	c := NewMemoryCache(0, time.Minute)

	_, err := Compile(c, `^(unclosed$`)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache(0, time.Minute)
	_, _ = Compile(c, "a")
	_, _ = Compile(c, "b")

	c.Delete(CacheKey("a"))
	_, found := c.Get(CacheKey("a"))
	assert.False(t, found)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)
	_, _ = Compile(c, "a")

	time.Sleep(30 * time.Millisecond)
	_, found := c.Get(CacheKey("a"))
	assert.False(t, found)
}
