package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// MockClock implements Clock interface for testing
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

func TestNewMemoryStore(t *testing.T) {
	tests := []struct {
		name        string
		config      MemoryStoreConfig
		wantMaxKeys int
	}{
		{
			name: "with valid config",
			config: MemoryStoreConfig{
				MaxKeys: 5000,
				Clock:   &SystemClock{},
			},
			wantMaxKeys: 5000,
		},
		{
			name: "with zero max keys should use default",
			config: MemoryStoreConfig{
				MaxKeys: 0,
				Clock:   &SystemClock{},
			},
			wantMaxKeys: 10000,
		},
		{
			name: "with negative max keys should use default",
			config: MemoryStoreConfig{
				MaxKeys: -1,
				Clock:   &SystemClock{},
			},
			wantMaxKeys: 10000,
		},
		{
			name: "with nil clock should use system clock",
			config: MemoryStoreConfig{
				MaxKeys: 5000,
				Clock:   nil,
			},
			wantMaxKeys: 5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore(tt.config)
			if store == nil {
				t.Fatal("NewMemoryStore() returned nil")
			}
			if store.maxKeys != tt.wantMaxKeys {
				t.Errorf("maxKeys = %v, want %v", store.maxKeys, tt.wantMaxKeys)
			}
			if store.clock == nil {
				t.Error("clock should not be nil")
			}
		})
	}
}

func TestMemoryStore_Incr(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := NewMockClock(now)

	store := NewMemoryStore(MemoryStoreConfig{
		MaxKeys: 10,
		Clock:   clock,
	})

	window := 10 * time.Minute

	count, resetAt, err := store.Incr(ctx, "203.0.113.7", window)
	if err != nil {
		t.Fatalf("Incr() error = %v, want nil", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if !resetAt.Equal(now.Add(window)) {
		t.Errorf("resetAt = %v, want %v", resetAt, now.Add(window))
	}

	// Subsequent hits in the same window increment the counter and keep
	// the original reset time.
	clock.Advance(1 * time.Minute)
	count, resetAt2, err := store.Incr(ctx, "203.0.113.7", window)
	if err != nil {
		t.Fatalf("Incr() error = %v, want nil", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if !resetAt2.Equal(resetAt) {
		t.Errorf("resetAt moved within the window: %v != %v", resetAt2, resetAt)
	}
}

func TestMemoryStore_Incr_WindowExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := NewMockClock(now)

	store := NewMemoryStore(MemoryStoreConfig{MaxKeys: 10, Clock: clock})
	window := 10 * time.Minute

	for i := 0; i < 5; i++ {
		if _, _, err := store.Incr(ctx, "203.0.113.7", window); err != nil {
			t.Fatalf("Incr() error = %v", err)
		}
	}

	// Advance past the window; the next hit opens a fresh window.
	clock.Advance(window)
	count, resetAt, err := store.Incr(ctx, "203.0.113.7", window)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count after expiry = %d, want 1", count)
	}
	wantReset := clock.Now().Add(window)
	if !resetAt.Equal(wantReset) {
		t.Errorf("resetAt = %v, want %v", resetAt, wantReset)
	}
}

func TestMemoryStore_Incr_CountsPastLimit(t *testing.T) {
	ctx := context.Background()
	clock := NewMockClock(time.Now())
	store := NewMemoryStore(MemoryStoreConfig{MaxKeys: 10, Clock: clock})

	// The store does not know about limits; it just counts. Twenty hits
	// in one window report counts 1 through 20.
	for i := 1; i <= 20; i++ {
		count, _, err := store.Incr(ctx, "k", time.Minute)
		if err != nil {
			t.Fatalf("Incr() error = %v", err)
		}
		if count != i {
			t.Fatalf("count = %d, want %d", count, i)
		}
	}
}

func TestMemoryStore_Peek(t *testing.T) {
	ctx := context.Background()
	clock := NewMockClock(time.Now())
	store := NewMemoryStore(MemoryStoreConfig{MaxKeys: 10, Clock: clock})

	// Peek on missing key
	count, resetAt, err := store.Peek(ctx, "missing")
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if count != 0 || !resetAt.IsZero() {
		t.Errorf("Peek(missing) = %d, %v, want 0 and zero time", count, resetAt)
	}

	// Peek does not record a hit
	_, wantReset, _ := store.Incr(ctx, "k", time.Minute)
	count, resetAt, err = store.Peek(ctx, "k")
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Peek count = %d, want 1", count)
	}
	if !resetAt.Equal(wantReset) {
		t.Errorf("Peek resetAt = %v, want %v", resetAt, wantReset)
	}

	// Expired windows report zero
	clock.Advance(2 * time.Minute)
	count, _, err = store.Peek(ctx, "k")
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Peek count after expiry = %d, want 0", count)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := NewMockClock(time.Now())
	store := NewMemoryStore(MemoryStoreConfig{MaxKeys: 100, Clock: clock})

	// Two short windows and one long one
	_, _, _ = store.Incr(ctx, "a", 1*time.Minute)
	_, _, _ = store.Incr(ctx, "b", 1*time.Minute)
	_, _, _ = store.Incr(ctx, "c", 1*time.Hour)

	clock.Advance(5 * time.Minute)

	removed, err := store.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	keys, err := store.KeyCount(ctx)
	if err != nil {
		t.Fatalf("KeyCount() error = %v", err)
	}
	if keys != 1 {
		t.Errorf("KeyCount = %d, want 1", keys)
	}
}

func TestMemoryStore_EvictsWhenFull(t *testing.T) {
	ctx := context.Background()
	clock := NewMockClock(time.Now())
	store := NewMemoryStore(MemoryStoreConfig{MaxKeys: 3, Clock: clock})

	_, _, _ = store.Incr(ctx, "a", 1*time.Minute)
	_, _, _ = store.Incr(ctx, "b", 2*time.Minute)
	_, _, _ = store.Incr(ctx, "c", 3*time.Minute)

	// Store is full with live windows; adding a new key evicts the
	// window closest to expiry ("a").
	_, _, err := store.Incr(ctx, "d", 1*time.Minute)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}

	keys, _ := store.KeyCount(ctx)
	if keys != 3 {
		t.Errorf("KeyCount = %d, want 3", keys)
	}

	count, _, _ := store.Peek(ctx, "a")
	if count != 0 {
		t.Errorf("expected key 'a' to be evicted, got count %d", count)
	}
	count, _, _ = store.Peek(ctx, "b")
	if count != 1 {
		t.Errorf("expected key 'b' to survive, got count %d", count)
	}
}

func TestMemoryStore_ConcurrentIncr(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(DefaultMemoryStoreConfig())

	const goroutines = 20
	const hitsPerGoroutine = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < hitsPerGoroutine; j++ {
				if _, _, err := store.Incr(ctx, "shared", time.Minute); err != nil {
					t.Errorf("Incr() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	count, _, err := store.Peek(ctx, "shared")
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if count != goroutines*hitsPerGoroutine {
		t.Errorf("count = %d, want %d", count, goroutines*hitsPerGoroutine)
	}
}

func BenchmarkMemoryStore_Incr(b *testing.B) {
	ctx := context.Background()
	store := NewMemoryStore(DefaultMemoryStoreConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("ip-%d", i%1000)
		_, _, _ = store.Incr(ctx, key, time.Minute)
	}
}
