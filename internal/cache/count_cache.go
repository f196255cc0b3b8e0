// Package cache provides a small read-through cache for expensive
// aggregate queries such as petition signature counts.
package cache

import (
	"context"
	"sync"
	"time"

	"solidarity-api/pkg/ratelimit"
)

// DefaultCountTTL is how long a cached count stays fresh. Public
// counters tolerate staleness up to this bound; callers that need an
// exact total after a write use Invalidate.
const DefaultCountTTL = 5 * time.Minute

// CountLoader loads the authoritative count from the underlying store.
type CountLoader func(ctx context.Context) (int64, error)

// CountCache is a thread-safe read-through cache for a set of named
// counters. Each entry is loaded on demand and served from memory until
// its TTL expires. Loader failures are not cached: the next read tries
// the loader again.
type CountCache struct {
	mu      sync.Mutex
	entries map[string]countEntry
	ttl     time.Duration
	clock   ratelimit.Clock
}

type countEntry struct {
	value     int64
	expiresAt time.Time
}

// CountCacheConfig holds configuration for CountCache.
type CountCacheConfig struct {
	// TTL is how long cached values stay fresh.
	// Default: DefaultCountTTL
	TTL time.Duration

	// Clock provides time operations for testing.
	// Default: SystemClock
	Clock ratelimit.Clock
}

// NewCountCache creates a new count cache with the given configuration.
func NewCountCache(config CountCacheConfig) *CountCache {
	if config.TTL <= 0 {
		config.TTL = DefaultCountTTL
	}
	if config.Clock == nil {
		config.Clock = &ratelimit.SystemClock{}
	}

	return &CountCache{
		entries: make(map[string]countEntry),
		ttl:     config.TTL,
		clock:   config.Clock,
	}
}

// Get returns the cached count for the key, invoking the loader when
// the entry is missing or stale. Only a successful load refreshes the
// entry.
//
// The cache lock is not held across the loader call, so concurrent
// misses on the same key may each invoke the loader. The last writer
// wins, which is harmless for monotonic counters.
func (c *CountCache) Get(ctx context.Context, key string, load CountLoader) (int64, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	now := c.clock.Now()
	c.mu.Unlock()

	if ok && now.Before(entry.expiresAt) {
		return entry.value, nil
	}

	value, err := load(ctx)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.entries[key] = countEntry{
		value:     value,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
	c.mu.Unlock()

	return value, nil
}

// Peek returns the cached value for the key even when it is stale, and
// reports whether any value was present. It never invokes a loader.
func (c *CountCache) Peek(key string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry.value, ok
}

// Invalidate removes the cached entry for the key, forcing the next
// read through the loader.
func (c *CountCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Sweep removes expired entries and returns the number removed. Stale
// entries are already invisible to Get; sweeping just frees the memory.
func (c *CountCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently cached, including stale
// ones not yet refreshed.
func (c *CountCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
