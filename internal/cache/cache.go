// Package cache provides a small in-memory TTL cache for derived read-side
// state. It is an explicit, injected dependency with defined eviction and an
// explicit Clear, never ambient package-level state.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded map with per-entry expiry. Expired entries are
// dropped on read and swept opportunistically on write.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	// now is replaceable in tests.
	now func() time.Time
}

// New returns a Cache whose entries expire ttl after they are set.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false if absent or expired.
// Expired entries are evicted on access.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry, and sweeps out
// entries that have already expired.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = entry{value: value, expiresAt: now.Add(c.ttl)}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
