package commands

import (
	"context"
	"time"
)

// CompleteDeliveryCommandHandler finishes an IN_TRANSIT delivery. A ride still
// waiting for its payment cannot be completed.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewCompleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
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

	if err = deliveryEntity.Complete(cmd.CourierID(), time.Now()); err != nil {
		return err
	}

	if err = updateDelivery(ctx, deliveryRepo, deliveryEntity, "complete"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
