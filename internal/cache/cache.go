// Package cache holds fetched collections keyed by resource type so screens
// agree with each other after a mutation without a full refetch.
package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Collections is safe for concurrent use. A zero ttl keeps entries until they
// are invalidated. Reads do not extend an entry's lifetime.
type Collections struct {
	items *ttlcache.Cache[string, any]
}

func New(ttl time.Duration) *Collections {
	return &Collections{
		items: ttlcache.New[string, any](
			ttlcache.WithTTL[string, any](ttl),
			ttlcache.WithDisableTouchOnHit[string, any](),
		),
	}
}

func (c *Collections) Put(key string, value any) {
	c.items.Set(key, value, ttlcache.DefaultTTL)
}

func (c *Collections) lookup(key string) (any, bool) {
	item := c.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false
	}
	return item.Value(), true
}

func (c *Collections) Invalidate(keys ...string) {
	for _, k := range keys {
		c.items.Delete(k)
	}
}

func (c *Collections) InvalidateAll() {
	c.items.DeleteAll()
}

// GetSlice returns a copy of the cached slice under key.
func GetSlice[T any](c *Collections, key string) ([]T, bool) {
	v, ok := c.lookup(key)
	if !ok {
		return nil, false
	}
	items, ok := v.([]T)
	if !ok {
		return nil, false
	}
	return append([]T(nil), items...), true
}

// PutSlice stores a private copy of items under key.
func PutSlice[T any](c *Collections, key string, items []T) {
	c.Put(key, append([]T(nil), items...))
}
