package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLock(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRunLock(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire for the same key fails", func(t *testing.T) {
		_, client := newTestLock(t)
		lock := NewRunLock(client)

		ok, err := lock.Acquire(ctx, "2024-Q1", time.Hour)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Fatal("expected first acquire to succeed")
		}

		ok, err = lock.Acquire(ctx, "2024-Q1", time.Hour)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected second acquire to fail while lock is held")
		}
	})

	t.Run("different keys do not contend", func(t *testing.T) {
		_, client := newTestLock(t)
		lock := NewRunLock(client)

		if ok, _ := lock.Acquire(ctx, "2024-Q1", time.Hour); !ok {
			t.Fatal("expected first key to lock")
		}
		if ok, _ := lock.Acquire(ctx, "2024-Q2", time.Hour); !ok {
			t.Error("expected different key to lock independently")
		}
	})

	t.Run("release frees the key", func(t *testing.T) {
		_, client := newTestLock(t)
		lock := NewRunLock(client)

		if ok, _ := lock.Acquire(ctx, "2024-Q1", time.Hour); !ok {
			t.Fatal("expected acquire to succeed")
		}
		if err := lock.Release(ctx, "2024-Q1"); err != nil {
			t.Fatalf("expected no error on release, got %v", err)
		}
		if ok, _ := lock.Acquire(ctx, "2024-Q1", time.Hour); !ok {
			t.Error("expected acquire to succeed after release")
		}
	})

	t.Run("lock expires after the TTL", func(t *testing.T) {
		mr, client := newTestLock(t)
		lock := NewRunLock(client)

		if ok, _ := lock.Acquire(ctx, "2024-Q1", time.Minute); !ok {
			t.Fatal("expected acquire to succeed")
		}

		mr.FastForward(2 * time.Minute)

		if ok, _ := lock.Acquire(ctx, "2024-Q1", time.Minute); !ok {
			t.Error("expected acquire to succeed after TTL expiry")
		}
	})
}
