package memory

import (
	"context"
	"sync"
	"time"

	"marketplace/internal/core/ports"
)

var _ ports.Locker = (*Locker)(nil)

type lease struct {
	token     uint64
	expiresAt time.Time
}

// Locker is a process-local ports.Locker. Leases expire like their Redis
// counterparts, so a holder that never releases does not block others forever.
type Locker struct {
	mu     sync.Mutex
	leases map[string]lease
	next   uint64
	now    func() time.Time
}

func NewLocker() *Locker {
	return &Locker{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.ReleaseFunc, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if current, ok := l.leases[key]; ok && now.Before(current.expiresAt) {
		return nil, false, nil
	}

	l.next++
	token := l.next
	l.leases[key] = lease{token: token, expiresAt: now.Add(ttl)}

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, ok := l.leases[key]; ok && current.token == token {
			delete(l.leases, key)
		}
		return nil
	}
	return release, true, nil
}
