package driven

import (
	"context"
	"time"
)

// Cache persists the small shared state the automations exchange through
// Redis: OAuth tokens, last-run timestamps and the cycle dates.
type Cache interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound when the key is unset.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with no expiry.
	Set(ctx context.Context, key, value string) error

	// AcquireLock takes a best-effort exclusive lock under key for ttl and
	// returns an opaque token for release. Returns domain.ErrLockHeld when
	// another process holds the lock.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error)

	// ReleaseLock releases the lock under key if token still owns it.
	ReleaseLock(ctx context.Context, key, token string) error
}
