// Package cache implements Redis-backed coordination primitives.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/creator-ledger/backend/internal/application/adapter"
)

const runLockPrefix = "report:run-lock:"

// redisRunLock implements adapter.RunLock using Redis SET NX.
type redisRunLock struct {
	client *redis.Client
}

// NewRunLock creates a Redis-backed run lock.
func NewRunLock(client *redis.Client) adapter.RunLock {
	return &redisRunLock{
		client: client,
	}
}

// Acquire tries to take the lock for key. SET NX loses to a concurrent
// holder; the TTL bounds how long a crashed run can keep the lock.
func (l *redisRunLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, runLockPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	return ok, nil
}

// Release frees the lock for key.
func (l *redisRunLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, runLockPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}
