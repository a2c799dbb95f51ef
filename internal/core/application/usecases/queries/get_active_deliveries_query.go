package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery lists deliveries that are neither completed nor
// cancelled, optionally narrowed to one courier. It backs the courier app's
// "my deliveries" screen and the operations dashboard.
//
// Example:
//
//	query := NewGetActiveDeliveriesQuery(&courierID)
//	views, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list active deliveries: %w", err)
//	}
type GetActiveDeliveriesQuery struct {
	courierID *kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery lists every active delivery when courierID is nil.
func NewGetActiveDeliveriesQuery(courierID *kernel.UUID) GetActiveDeliveriesQuery {
	var filter *kernel.UUID
	if courierID != nil {
		id := *courierID
		filter = &id
	}
	return GetActiveDeliveriesQuery{courierID: filter, guard: guard.NewConstructorGuard()}
}

func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

func (q GetActiveDeliveriesQuery) CourierID() *kernel.UUID { return q.courierID }
