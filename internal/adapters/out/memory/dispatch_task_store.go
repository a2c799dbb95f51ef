// Package memory provides in-process implementations of the dispatch task store
// and the lock, used by single-node deployments and tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var _ ports.DispatchTaskStore = (*DispatchTaskStore)(nil)

type DispatchTaskStore struct {
	mu    sync.Mutex
	tasks map[kernel.UUID]ports.DispatchTask
}

func NewDispatchTaskStore() *DispatchTaskStore {
	return &DispatchTaskStore{tasks: make(map[kernel.UUID]ports.DispatchTask)}
}

func (s *DispatchTaskStore) Get(_ context.Context, deliveryID kernel.UUID) (ports.DispatchTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[deliveryID]
	if !ok {
		return ports.DispatchTask{}, errs.NewObjectNotFoundError("deliveryID", deliveryID)
	}
	return clone(task), nil
}

func (s *DispatchTaskStore) Put(_ context.Context, task ports.DispatchTask) error {
	id, err := kernel.UUIDFromString(task.DeliveryID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[id] = clone(task)
	return nil
}

func (s *DispatchTaskStore) Update(
	ctx context.Context,
	deliveryID kernel.UUID,
	mutate func(*ports.DispatchTask),
) (ports.DispatchTask, error) {
	if err := ctx.Err(); err != nil {
		return ports.DispatchTask{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[deliveryID]
	if !ok {
		task = ports.DispatchTask{DeliveryID: deliveryID.String()}
	}
	task = clone(task)
	mutate(&task)
	s.tasks[deliveryID] = task
	return clone(task), nil
}

// clone detaches the notified ids so callers never share the backing array.
func clone(task ports.DispatchTask) ports.DispatchTask {
	task.NotifiedCourierIDs = slices.Clone(task.NotifiedCourierIDs)
	return task
}
