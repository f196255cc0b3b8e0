package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-memory implementation of Store.
//
// Each key maps to a single fixed window holding a hit count and an
// expiry time. Expired windows are replaced lazily on the next hit and
// removed in bulk by Sweep. A maximum key limit bounds memory growth;
// when it is reached, expired windows are dropped first and then the
// window closest to expiry is evicted.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
	maxKeys int
	clock   Clock
}

// windowEntry holds the state of one fixed window.
type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryStoreConfig holds configuration for MemoryStore.
type MemoryStoreConfig struct {
	// MaxKeys is the maximum number of keys to store in memory.
	// Default: 10000
	MaxKeys int

	// Clock provides time operations for testing.
	// Default: SystemClock
	Clock Clock
}

// DefaultMemoryStoreConfig returns the default configuration.
func DefaultMemoryStoreConfig() MemoryStoreConfig {
	return MemoryStoreConfig{
		MaxKeys: 10000,
		Clock:   &SystemClock{},
	}
}

// NewMemoryStore creates a new in-memory fixed-window store with the
// given configuration.
func NewMemoryStore(config MemoryStoreConfig) *MemoryStore {
	if config.MaxKeys <= 0 {
		config.MaxKeys = 10000
	}
	if config.Clock == nil {
		config.Clock = &SystemClock{}
	}

	return &MemoryStore{
		windows: make(map[string]*windowEntry),
		maxKeys: config.MaxKeys,
		clock:   config.Clock,
	}
}

// Incr records a hit for the given key within a fixed window.
//
// If the key has no window or its window has expired, a fresh window is
// opened starting now. The count keeps incrementing past any limit so
// that rejected requests still consume window budget.
//
// This method is thread-safe.
func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	entry, exists := s.windows[key]
	if !exists || !now.Before(entry.resetAt) {
		if !exists && len(s.windows) >= s.maxKeys {
			s.evictLocked(now)
		}
		entry = &windowEntry{resetAt: now.Add(window)}
		s.windows[key] = entry
	}

	entry.count++
	return entry.count, entry.resetAt, nil
}

// Peek returns the current count and expiry for the key without
// recording a hit. A missing or expired window reports a zero count.
//
// This method is thread-safe.
func (s *MemoryStore) Peek(ctx context.Context, key string) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.windows[key]
	if !exists || !s.clock.Now().Before(entry.resetAt) {
		return 0, time.Time{}, nil
	}

	return entry.count, entry.resetAt, nil
}

// Sweep removes all expired windows and returns the number removed.
//
// This method is thread-safe.
func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0

	for key, entry := range s.windows {
		if !now.Before(entry.resetAt) {
			delete(s.windows, key)
			removed++
		}
	}

	return removed, nil
}

// KeyCount returns the number of keys currently in storage, including
// expired windows not yet swept.
//
// This method is thread-safe.
func (s *MemoryStore) KeyCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.windows), nil
}

// evictLocked makes room for a new key when the store is full.
//
// Expired windows are dropped first. If every window is still live, the
// one closest to expiry is evicted: it holds the least remaining state.
//
// Must be called while holding the lock.
func (s *MemoryStore) evictLocked(now time.Time) {
	for key, entry := range s.windows {
		if !now.Before(entry.resetAt) {
			delete(s.windows, key)
		}
	}
	if len(s.windows) < s.maxKeys {
		return
	}

	var oldestKey string
	var oldestReset time.Time
	for key, entry := range s.windows {
		if oldestKey == "" || entry.resetAt.Before(oldestReset) {
			oldestKey = key
			oldestReset = entry.resetAt
		}
	}
	if oldestKey != "" {
		delete(s.windows, oldestKey)
	}
}
