package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript atomically increments a window counter and stamps its
// expiry on first hit. Returns the count and the remaining TTL in
// milliseconds.
var incrScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

// RedisStore is a Redis-backed implementation of Store.
//
// Window state lives in Redis keys with a TTL equal to the window
// duration, so limits are shared across all instances talking to the
// same Redis and expiry is handled natively (Sweep is a no-op).
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	clock  Clock
}

// RedisStoreConfig holds configuration for RedisStore.
type RedisStoreConfig struct {
	// Client is the Redis client to use. Required.
	Client redis.UniversalClient

	// Prefix namespaces the rate limit keys in Redis.
	// Default: "ratelimit:"
	Prefix string

	// Clock provides time operations for testing.
	// Default: SystemClock
	Clock Clock
}

// NewRedisStore creates a new Redis-backed fixed-window store.
func NewRedisStore(config RedisStoreConfig) *RedisStore {
	if config.Prefix == "" {
		config.Prefix = "ratelimit:"
	}
	if config.Clock == nil {
		config.Clock = &SystemClock{}
	}

	return &RedisStore{
		client: config.Client,
		prefix: config.Prefix,
		clock:  config.Clock,
	}
}

// Incr records a hit for the given key within a fixed window.
//
// The increment and the expiry stamp run in a single Lua script, so two
// racing first hits cannot leave a counter without a TTL.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrScript.Run(ctx, s.client, []string{s.prefix + key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("Incr: %w", err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return 0, time.Time{}, fmt.Errorf("Incr: unexpected script result %v", res)
	}

	count, ok := vals[0].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("Incr: unexpected count %v", vals[0])
	}
	ttlMillis, ok := vals[1].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("Incr: unexpected ttl %v", vals[1])
	}

	resetAt := s.clock.Now().Add(time.Duration(ttlMillis) * time.Millisecond)
	return int(count), resetAt, nil
}

// Peek returns the current count and expiry for the key without
// recording a hit.
func (s *RedisStore) Peek(ctx context.Context, key string) (int, time.Time, error) {
	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, s.prefix+key)
	ttlCmd := pipe.PTTL(ctx, s.prefix+key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, time.Time{}, fmt.Errorf("Peek: %w", err)
	}

	count, err := getCmd.Int()
	if err == redis.Nil {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("Peek: %w", err)
	}

	ttl, err := ttlCmd.Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("Peek: %w", err)
	}
	if ttl < 0 {
		return 0, time.Time{}, nil
	}

	return count, s.clock.Now().Add(ttl), nil
}

// Sweep is a no-op for Redis: key expiry is handled by the server.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

// KeyCount returns the number of live rate limit keys by scanning the
// configured prefix. This walks the keyspace and is intended for
// monitoring, not hot paths.
func (s *RedisStore) KeyCount(ctx context.Context) (int, error) {
	var cursor uint64
	count := 0

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("KeyCount: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return count, nil
}
