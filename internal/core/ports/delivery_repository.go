package ports

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// DeliveryRepository persists Delivery aggregates.
//
// Update is a compare-and-swap on the aggregate version: it writes only if the
// stored version still equals delivery.Version(), and returns errs.StaleObjectError
// otherwise. Callers treat a stale write as "state changed under us".
type DeliveryRepository interface {
	Add(ctx context.Context, delivery *delivery.Delivery) error

	Update(ctx context.Context, delivery *delivery.Delivery) error

	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*delivery.Delivery, error)
}
