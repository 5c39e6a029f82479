// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// RunLock provides best-effort mutual exclusion for report runs, keyed by
// reporting period. The engine itself does not deduplicate across runs;
// this guard lives at the trigger boundary.
type RunLock interface {
	// Acquire tries to take the lock for key. Returns false when another
	// run already holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the lock for key.
	Release(ctx context.Context, key string) error
}
