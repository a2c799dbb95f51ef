package redis

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "lock:"

var _ ports.Locker = (*Locker)(nil)

// releaseScript deletes the lock only if it still carries our token, so a holder
// whose lease expired cannot release somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	client redis.UniversalClient
}

func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{client: client}
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.ReleaseFunc, bool, error) {
	token := uuid.NewString()
	lockKey := lockKeyPrefix + key

	acquired, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}
	return release, true, nil
}
