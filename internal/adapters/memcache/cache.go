// Package memcache is an in-process ports.CacheService used when Valkey is
// not configured or unreachable.
package memcache

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/samirrijal/sundowner/internal/core/ports"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type entry struct {
	value   []byte
	expires time.Time // zero means no expiry
}

// Cache is a size-bounded LRU. Entries also honour the per-key TTL passed to
// Set, which may be shorter than the cache-wide maxAge.
type Cache struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

var _ ports.CacheService = (*Cache)(nil)

// New returns a cache holding at most size entries for at most maxAge.
func New(size int, maxAge time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, entry](size, nil, maxAge),
		now: time.Now,
	}
}

// Get returns a copy of the cached value.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		c.lru.Remove(key)
		return nil, ErrMiss
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value for ttlSeconds. A non-positive TTL leaves only
// the cache-wide maxAge.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttlSeconds int) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttlSeconds > 0 {
		e.expires = c.now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	c.lru.Add(key, e)
	return nil
}

// Delete removes a key.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
