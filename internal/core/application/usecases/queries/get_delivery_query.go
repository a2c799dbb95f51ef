// Package queries contains read operations for retrieving marketplace state.
// Queries bypass the aggregates and return read models shaped for callers.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves one delivery with its lifecycle timestamps.
//
// Example:
//
//	query, err := NewGetDeliveryQuery(deliveryID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetDeliveryQuery struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// DeliveryView is the read model of a delivery. Status is the lifecycle
// status name; AwaitingPayment reports the payment-wait flag.
type DeliveryView struct {
	ID                 kernel.UUID
	ClientID           kernel.UUID
	OrganizerID        *kernel.UUID
	CourierID          *kernel.UUID
	Type               string
	VehicleType        string
	Status             string
	AwaitingPayment    bool
	PaymentCompleted   bool
	Origin             kernel.Location
	OriginAddress      string
	Destination        kernel.Location
	DestinationAddress string
	TotalAmount        int64
	ShippingFee        int64
	DistanceKm         float64
	CancellationReason string
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	PickedUpAt         *time.Time
	InTransitAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
}
