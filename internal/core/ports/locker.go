package ports

import (
	"context"
	"time"
)

// ReleaseFunc releases a lock obtained from Locker.
type ReleaseFunc func(ctx context.Context) error

// Locker provides a lease-based mutual exclusion primitive. TryLock never blocks:
// acquired is false when another holder owns key. The lease expires after ttl
// even if never released.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release ReleaseFunc, acquired bool, err error)
}
