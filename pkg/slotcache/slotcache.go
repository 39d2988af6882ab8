// Package slotcache holds assembled slot views for a short window so
// repeated reads of the same (signup type, period) pair skip the external
// store. It is a single-process cache: multiple server instances each hold
// an independent copy, and staleness is bounded only by the TTL plus
// explicit invalidation after mutations.
package slotcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// DefaultTTL bounds how stale a cached slot view may get.
const DefaultTTL = time.Hour

type entry struct {
	data     any
	storedAt time.Time
}

// Cache is a keyed, time-boxed slot-view cache. Safe for concurrent use.
// Construct one per process and inject it; tests get a fresh instance per
// case.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	entries map[string]entry
}

// New returns an empty cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Key builds the cache key for a signup type and period token.
func Key(signupType store.SignupType, period string) string {
	return fmt.Sprintf("%s-%s", signupType, period)
}

// Get returns the cached data for key. Expiry is lazy: entries past the TTL
// are removed on read, there is no background sweep.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock in case a concurrent Set refreshed it.
		if cur, ok := c.entries[key]; ok && c.now().Sub(cur.storedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.data, true
}

// Set stores data under key, unconditionally overwriting and resetting the
// entry's timestamp.
func (c *Cache) Set(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, storedAt: c.now()}
}

// Invalidate removes one key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll clears the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Keys returns all currently held keys, expired or not. The coordinator
// uses this to invalidate every period of a signup type after a mutation,
// since the mutated record's period is not known without re-parsing.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}
