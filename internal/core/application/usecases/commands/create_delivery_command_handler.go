package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/ports"
)

// CreateDeliveryCommandHandler persists a new PENDING delivery and starts the
// courier dispatch cascade once the transaction has committed.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, coordinator)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery creation failed: %w", err)
//	}
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher ports.Dispatcher
}

func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	dispatcher ports.Dispatcher,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle creates the delivery. The cascade is started only after commit so
// couriers are never invited to a delivery that does not exist yet.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
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

	deliveryEntity, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.ClientID(),
		cmd.OrganizerID(),
		cmd.Route(),
		cmd.Type(),
		cmd.VehicleType(),
		cmd.TotalAmount(),
		cmd.ShippingFee(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, deliveryEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Start(deliveryEntity.ID())
	return nil
}
