package ports

import (
	"context"
	"slices"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

type DispatchState string

const (
	DispatchRunning   DispatchState = "RUNNING"
	DispatchSilenced  DispatchState = "SILENCED"
	DispatchExhausted DispatchState = "EXHAUSTED"
	DispatchCancelled DispatchState = "CANCELLED"
)

// DispatchTask records the progress of the escalation cascade of one delivery.
type DispatchTask struct {
	DeliveryID         string        `json:"deliveryId"`
	Attempt            int           `json:"attempt"`
	Tier               int           `json:"tier"`
	State              DispatchState `json:"state"`
	NotifiedCourierIDs []string      `json:"notifiedCourierIds"`
	StartedAt          time.Time     `json:"startedAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (t DispatchTask) HasNotified(courierID kernel.UUID) bool {
	return slices.Contains(t.NotifiedCourierIDs, courierID.String())
}

// DispatchTaskStore keeps dispatch tasks by delivery id. Get returns
// errs.ObjectNotFoundError for unknown deliveries. Update applies mutate
// atomically with respect to other Update calls on the same id; it creates the
// task when missing.
type DispatchTaskStore interface {
	Get(ctx context.Context, deliveryID kernel.UUID) (DispatchTask, error)

	Put(ctx context.Context, task DispatchTask) error

	Update(ctx context.Context, deliveryID kernel.UUID, mutate func(*DispatchTask)) (DispatchTask, error)
}
