package commands

import (
	"context"
	"time"

	"marketplace/internal/core/ports"
)

// CancelDeliveryCommandHandler cancels a non-terminal delivery. When a courier
// was attached, their cancellation counter is incremented in the same
// transaction. The dispatch cascade is stopped after commit.
type CancelDeliveryCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher ports.Dispatcher
}

func NewCancelDeliveryCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher ports.Dispatcher,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	previousCourierID, err := deliveryEntity.Cancel(cmd.Reason(), time.Now())
	if err != nil {
		return err
	}

	if err = updateDelivery(ctx, deliveryRepo, deliveryEntity, "cancel"); err != nil {
		return err
	}

	if previousCourierID != nil {
		courierRepo := uow.CourierRepository()
		courierEntity, err := courierRepo.Get(ctx, *previousCourierID)
		if err != nil {
			return err
		}
		courierEntity.RecordCancellation()
		if err = updateCourier(ctx, courierRepo, courierEntity, "cancel delivery"); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Stop(deliveryEntity.ID())
	return nil
}
