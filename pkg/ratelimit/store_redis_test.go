package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(RedisStoreConfig{Client: client})
	return store, mr
}

func TestRedisStore_Incr(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	window := 10 * time.Minute

	count, resetAt, err := store.Incr(ctx, "203.0.113.7", window)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if resetAt.IsZero() {
		t.Error("resetAt should not be zero")
	}

	count, _, err = store.Incr(ctx, "203.0.113.7", window)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestRedisStore_Incr_WindowExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	window := 10 * time.Minute

	for i := 0; i < 5; i++ {
		if _, _, err := store.Incr(ctx, "203.0.113.7", window); err != nil {
			t.Fatalf("Incr() error = %v", err)
		}
	}

	// Expire the window on the Redis side; the next hit starts fresh.
	mr.FastForward(window)

	count, _, err := store.Incr(ctx, "203.0.113.7", window)
	if err != nil {
		t.Fatalf("Incr() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count after expiry = %d, want 1", count)
	}
}

func TestRedisStore_Peek(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	count, resetAt, err := store.Peek(ctx, "missing")
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if count != 0 || !resetAt.IsZero() {
		t.Errorf("Peek(missing) = %d, %v, want 0 and zero time", count, resetAt)
	}

	if _, _, err := store.Incr(ctx, "k", time.Minute); err != nil {
		t.Fatalf("Incr() error = %v", err)
	}

	count, resetAt, err = store.Peek(ctx, "k")
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Peek count = %d, want 1", count)
	}
	if resetAt.IsZero() {
		t.Error("resetAt should not be zero for a live window")
	}
}

func TestRedisStore_KeyCount(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	for _, key := range []string{"a", "b", "c"} {
		if _, _, err := store.Incr(ctx, key, time.Minute); err != nil {
			t.Fatalf("Incr() error = %v", err)
		}
	}

	count, err := store.KeyCount(ctx)
	if err != nil {
		t.Fatalf("KeyCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("KeyCount = %d, want 3", count)
	}
}

func TestRedisStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	// Redis handles expiry natively; Sweep reports nothing to do.
	removed, err := store.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	storeA := NewRedisStore(RedisStoreConfig{Client: client, Prefix: "contact:"})
	storeB := NewRedisStore(RedisStoreConfig{Client: client, Prefix: "petition:"})

	if _, _, err := storeA.Incr(ctx, "ip", time.Minute); err != nil {
		t.Fatalf("Incr() error = %v", err)
	}

	count, _, err := storeB.Peek(ctx, "ip")
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if count != 0 {
		t.Errorf("prefixes should isolate keys, got count %d", count)
	}
}
