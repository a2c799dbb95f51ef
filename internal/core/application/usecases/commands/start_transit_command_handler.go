package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/services"
)

// StartTransitCommandHandler moves a PICKED_UP delivery to IN_TRANSIT. Rides
// that are not paid yet enter payment-wait here.
type StartTransitCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     services.PaymentTimingPolicy
}

func NewStartTransitCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy services.PaymentTimingPolicy,
) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h *StartTransitCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
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

	awaitPayment := h.policy.RequiresPaymentAt(deliveryEntity, services.CheckpointTransitStart)
	if err = deliveryEntity.StartTransit(cmd.CourierID(), awaitPayment, time.Now()); err != nil {
		return err
	}

	if err = updateDelivery(ctx, deliveryRepo, deliveryEntity, "start transit"); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
