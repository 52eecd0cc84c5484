// Package ratelimit counts requests in an external Redis store so quota state
// is shared across edge instances. The middleware layer decides what to do
// with the result; this package only counts.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result is the outcome of one quota check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store checks and consumes quota for a (scope, key) pair.
type Store interface {
	Check(ctx context.Context, scope, key string) (Result, error)
}

// RedisStore is a fixed-window counter on Redis. INCR is atomic, so
// concurrent requests on the same key can at worst overcount when the
// first-increment EXPIRE races with window expiry; they can never undercount.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisStore(client *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{client: client, limit: limit, window: window}
}

func (s *RedisStore) key(scope, key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, key)
}

// Check increments the counter for (scope, key) and reports whether the
// request fits the window quota. A store error is returned as-is; the caller
// owns the fail-open decision.
func (s *RedisStore) Check(ctx context.Context, scope, key string) (Result, error) {
	k := s.key(scope, key)
	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, s.window).Err(); err != nil {
			return Result{}, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	ttl, err := s.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// Counter without expiry (lost EXPIRE); fall back to a full window so
		// Retry-After stays sane.
		ttl = s.window
	}
	remaining := s.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(s.limit),
		Limit:     s.limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
