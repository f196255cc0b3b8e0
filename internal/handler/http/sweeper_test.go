package http

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"solidarity-api/internal/cache"
	"solidarity-api/pkg/ratelimit"
)

// fakeClock lets the test expire windows without sleeping.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestSweeper_RemovesExpiredState(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := ratelimit.NewMemoryStore(ratelimit.MemoryStoreConfig{Clock: clock})
	counts := cache.NewCountCache(cache.CountCacheConfig{Clock: clock})

	ctx := context.Background()
	if _, _, err := store.Incr(ctx, "203.0.113.7", time.Minute); err != nil {
		t.Fatalf("Incr err=%v", err)
	}
	if _, err := counts.Get(ctx, "petition:count", func(context.Context) (int64, error) {
		return 42, nil
	}); err != nil {
		t.Fatalf("Get err=%v", err)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewSweeper(logger, nil,
		[]SweepTarget{{Scope: "petition", Store: store}},
		[]*cache.CountCache{counts})

	// Nothing has expired yet
	sweeper.sweep()
	if count, _ := store.KeyCount(ctx); count != 1 {
		t.Errorf("key count = %d, want 1 before expiry", count)
	}
	if counts.Len() != 1 {
		t.Errorf("cache len = %d, want 1 before expiry", counts.Len())
	}

	// Jump past the window and the cache TTL
	clock.now = clock.now.Add(10 * time.Minute)
	sweeper.sweep()

	if count, _ := store.KeyCount(ctx); count != 0 {
		t.Errorf("key count = %d, want 0 after sweep", count)
	}
	if counts.Len() != 0 {
		t.Errorf("cache len = %d, want 0 after sweep", counts.Len())
	}
}

func TestSweeper_StartStop(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := ratelimit.NewMemoryStore(ratelimit.DefaultMemoryStoreConfig())

	sweeper := NewSweeper(logger, nil, []SweepTarget{{Scope: "default", Store: store}}, nil)
	if err := sweeper.Start(time.Minute); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	sweeper.Stop()
}
