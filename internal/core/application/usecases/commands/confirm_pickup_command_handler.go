package commands

import (
	"context"
	"time"
)

// ConfirmPickupCommandHandler moves an ACCEPTED delivery to PICKED_UP for its
// assigned courier. Deliveries still waiting for payment are rejected.
type ConfirmPickupCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewConfirmPickupCommandHandler(uowFactory DeliveryUoWFactory) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	deliveryEntity, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = deliveryEntity.ConfirmPickup(cmd.CourierID(), time.Now()); err != nil {
		return err
	}

	if err = updateDelivery(ctx, deliveryRepo, deliveryEntity, "confirm pickup"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
