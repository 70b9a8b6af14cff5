// Package cache provides the process-wide response cache.
//
// Entries expire lazily: an expired entry stays in memory until the next Get
// for its key removes it. There is no background sweeper and no size bound.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a concurrency-safe key/value store with per-entry expiry.
// The zero value is not usable; construct with New.
type TTLCache struct {
	entries *xsync.MapOf[string, entry]
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a TTLCache
type Option func(*TTLCache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *TTLCache) {
		c.now = now
	}
}

// New creates an empty cache
func New(opts ...Option) *TTLCache {
	c := &TTLCache{
		entries: xsync.NewMapOf[string, entry](),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key if it has not expired. An expired
// entry is removed before reporting a miss.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	e, ok := c.entries.Load(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	now := c.now()
	if now.Before(e.expiresAt) {
		c.hits.Add(1)
		return e.value, true
	}

	// Re-check under the bucket lock so a concurrent Set is not thrown away.
	c.entries.Compute(key, func(old entry, loaded bool) (entry, bool) {
		if !loaded {
			return old, true
		}
		return old, !now.Before(old.expiresAt)
	})
	c.misses.Add(1)
	return nil, false
}

// Set stores value under key until now+ttl, replacing any existing entry.
// A ttl of zero or less stores an entry that is already expired.
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	c.entries.Store(key, entry{value: value, expiresAt: c.now().Add(ttl)})
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *TTLCache) Delete(key string) {
	c.entries.Delete(key)
}

// Clear removes every entry
func (c *TTLCache) Clear() {
	c.entries.Clear()
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	return c.entries.Size()
}

// GetOrSet returns the cached value for key or, on a miss, runs producer and
// caches its result for ttl. Errors are returned without touching the cache.
//
// Two callers missing on the same key concurrently both run producer; the
// later Set wins. Producers must therefore be safe to repeat.
func (c *TTLCache) GetOrSet(key string, ttl time.Duration, producer func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := producer()
	if err != nil {
		return nil, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

// Stats is a point-in-time snapshot of cache counters
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Stats returns the current counters
func (c *TTLCache) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
