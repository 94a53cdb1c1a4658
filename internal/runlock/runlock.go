package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker guards one engine run against overlapping triggers (the scheduler
// firing while a manual trigger is still dispatching). The lock is advisory:
// losing it only risks a duplicate push, never corrupted state, because the
// engine's only racing write is an idempotent subscription delete.
type Locker interface {
	// TryAcquire returns true if the caller now holds the lock.
	TryAcquire(ctx context.Context) (bool, error)
	// Release frees the lock. Safe to call after TTL expiry.
	Release(ctx context.Context) error
}

const lockKey = "medilog:alert-run:lock"

// RedisLocker implements Locker with a SET NX EX key. The TTL bounds how
// long a crashed run can block the next one.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) TryAcquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire run lock: %w", err)
	}
	return ok, nil
}

func (l *RedisLocker) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, lockKey).Err(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}

// NoopLocker is used when Redis is not configured. Every acquire succeeds,
// matching the original deployment where cron runs were unguarded.
type NoopLocker struct{}

func (NoopLocker) TryAcquire(ctx context.Context) (bool, error) { return true, nil }
func (NoopLocker) Release(ctx context.Context) error            { return nil }
