// Package ports defines the contracts between the marketplace core and its adapters:
// repositories and unit of work, the push notification gateway, the payment
// processor, the dispatch task store, the distributed lock and the dispatcher.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
)

// CourierRepository persists courier availability profiles with their employment links.
type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error

	Update(ctx context.Context, courier *courier.Courier) error

	// Get returns errs.ObjectNotFoundError when the courier does not exist.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAvailableWithin returns AVAILABLE couriers inside the bounding box of the
	// circle of radiusKm around center. The box over-approximates the circle;
	// exact filtering and ordering belong to services.GeoMatcher.
	GetAvailableWithin(ctx context.Context, center kernel.Location, radiusKm float64) ([]*courier.Courier, error)

	// GetActiveEmployeeIDs returns the distinct couriers holding an active
	// employment link with any of the organizations.
	GetActiveEmployeeIDs(ctx context.Context, organizationIDs []kernel.UUID) ([]kernel.UUID, error)
}
