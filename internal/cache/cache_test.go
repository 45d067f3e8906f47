package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecdar/reveal/component"
	"github.com/ecdar/reveal/internal/cache"
)

func TestCache_PutThenGetRoundTrips(t *testing.T) {
	t.Parallel()

	c := cache.New(2)
	key := cache.Key{UserID: "u1", ComponentsHash: "h1"}
	val := map[string]*component.CompiledComponent{}

	c.Put(key, val)
	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, val, got)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := cache.New(2)
	a := cache.Key{UserID: "u", ComponentsHash: "a"}
	b := cache.Key{UserID: "u", ComponentsHash: "b"}
	d := cache.Key{UserID: "u", ComponentsHash: "d"}

	c.Put(a, nil)
	c.Put(b, nil)
	c.Get(a) // a now most-recently-used; b is the LRU entry
	c.Put(d, nil)

	_, bStillThere := c.Get(b)
	_, aStillThere := c.Get(a)
	_, dStillThere := c.Get(d)

	assert.False(t, bStillThere, "expected b to be evicted as least-recently-used")
	assert.True(t, aStillThere)
	assert.True(t, dStillThere)
	assert.Equal(t, 2, c.Len())
}

func TestCache_InvalidateRemovesEntry(t *testing.T) {
	t.Parallel()

	c := cache.New(4)
	key := cache.Key{UserID: "u", ComponentsHash: "h"}
	c.Put(key, nil)
	c.Invalidate(key)

	_, ok := c.Get(key)
	assert.False(t, ok)
}
