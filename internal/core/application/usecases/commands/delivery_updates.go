package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// updateDelivery persists d and reports a lost optimistic race as an invalid
// state for operation: the delivery moved on after it was read.
func updateDelivery(ctx context.Context, repo ports.DeliveryRepository, d *delivery.Delivery, operation string) error {
	err := repo.Update(ctx, d)
	if errors.Is(err, errs.ErrStaleObject) {
		return errs.NewInvalidStateErrorWithReason(operation, d.Status().String(), "delivery was modified concurrently")
	}
	return err
}

// updateCourier is updateDelivery for couriers. Dispatch, cancellations and
// the courier app all write the same row, so losing the race is common.
func updateCourier(ctx context.Context, repo ports.CourierRepository, c *courier.Courier, operation string) error {
	err := repo.Update(ctx, c)
	if errors.Is(err, errs.ErrStaleObject) {
		return errs.NewInvalidStateErrorWithReason(operation, c.Availability().String(), "courier was modified concurrently")
	}
	return err
}
