package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	taskKeyPrefix     = "dispatch:task:"
	defaultTaskTTL    = 24 * time.Hour
	maxUpdateAttempts = 10
)

var (
	_ ports.DispatchTaskStore = (*DispatchTaskStore)(nil)

	ErrUpdateContention = errors.New("dispatch task update kept conflicting")
)

// DispatchTaskStore keeps dispatch tasks as JSON strings. Update is an optimistic
// WATCH/MULTI transaction retried on conflict, so concurrent updaters on several
// instances never lose each other's writes.
type DispatchTaskStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewDispatchTaskStore(client redis.UniversalClient, ttl time.Duration) *DispatchTaskStore {
	if ttl <= 0 {
		ttl = defaultTaskTTL
	}
	return &DispatchTaskStore{client: client, ttl: ttl}
}

func (s *DispatchTaskStore) Get(ctx context.Context, deliveryID kernel.UUID) (ports.DispatchTask, error) {
	task, found, err := s.read(ctx, s.client, deliveryID)
	if err != nil {
		return ports.DispatchTask{}, err
	}
	if !found {
		return ports.DispatchTask{}, errs.NewObjectNotFoundError("deliveryID", deliveryID)
	}
	return task, nil
}

func (s *DispatchTaskStore) Put(ctx context.Context, task ports.DispatchTask) error {
	id, err := kernel.UUIDFromString(task.DeliveryID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode dispatch task: %w", err)
	}
	if err = s.client.Set(ctx, taskKey(id), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store dispatch task %s: %w", id, err)
	}
	return nil
}

func (s *DispatchTaskStore) Update(
	ctx context.Context,
	deliveryID kernel.UUID,
	mutate func(*ports.DispatchTask),
) (ports.DispatchTask, error) {
	key := taskKey(deliveryID)
	var updated ports.DispatchTask

	txf := func(tx *redis.Tx) error {
		task, found, err := s.read(ctx, tx, deliveryID)
		if err != nil {
			return err
		}
		if !found {
			task = ports.DispatchTask{DeliveryID: deliveryID.String()}
		}

		mutate(&task)
		payload, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("failed to encode dispatch task: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err == nil {
			updated = task
		}
		return err
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return ports.DispatchTask{}, err
		}
		return updated, nil
	}
	return ports.DispatchTask{}, fmt.Errorf("%w: %s", ErrUpdateContention, deliveryID)
}

func (s *DispatchTaskStore) read(
	ctx context.Context,
	reader redis.StringCmdable,
	deliveryID kernel.UUID,
) (ports.DispatchTask, bool, error) {
	raw, err := reader.Get(ctx, taskKey(deliveryID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.DispatchTask{}, false, nil
	}
	if err != nil {
		return ports.DispatchTask{}, false, fmt.Errorf("failed to get dispatch task %s: %w", deliveryID, err)
	}

	var task ports.DispatchTask
	if err = json.Unmarshal(raw, &task); err != nil {
		return ports.DispatchTask{}, false, fmt.Errorf("failed to decode dispatch task %s: %w", deliveryID, err)
	}
	return task, true, nil
}

func taskKey(deliveryID kernel.UUID) string {
	return taskKeyPrefix + deliveryID.String()
}
