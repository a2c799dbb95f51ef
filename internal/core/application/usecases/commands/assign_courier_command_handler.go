package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AssignCourierCommandHandler lets a courier accept a PENDING delivery.
//
// A courier is eligible when they hold an active employment link or were
// invited by the dispatch cascade for this delivery. Parcel deliveries that are
// not paid yet enter payment-wait on acceptance.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, taskStore, coordinator, services.NewPaymentTimingPolicy())
//	cmd, _ := NewDeliveryActionCommand(deliveryID, courierID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
type AssignCourierCommandHandler struct {
	uowFactory AssignmentUoWFactory
	tasks      ports.DispatchTaskStore
	dispatcher ports.Dispatcher
	policy     services.PaymentTimingPolicy
}

func NewAssignCourierCommandHandler(
	uowFactory AssignmentUoWFactory,
	tasks ports.DispatchTaskStore,
	dispatcher ports.Dispatcher,
	policy services.PaymentTimingPolicy,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		tasks:      tasks,
		dispatcher: dispatcher,
		policy:     policy,
	}
}

// Handle assigns the courier and stops the dispatch cascade after commit.
// A concurrent change to the delivery surfaces as InvalidStateError.
func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd DeliveryActionCommand) error {
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
	courierRepo := uow.CourierRepository()

	deliveryEntity, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if deliveryEntity.Status() != delivery.Pending {
		return errs.NewInvalidStateError("assign courier", deliveryEntity.Status().String())
	}

	courierEntity, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if err = courierEntity.CanAccept(); err != nil {
		return err
	}
	if err = h.checkEligibility(ctx, deliveryEntity, courierEntity); err != nil {
		return err
	}

	awaitPayment := h.policy.RequiresPaymentAt(deliveryEntity, services.CheckpointAcceptance)
	if err = deliveryEntity.Accept(courierEntity.ID(), awaitPayment, time.Now()); err != nil {
		return err
	}
	courierEntity.RecordAcceptedDelivery()

	if err = updateDelivery(ctx, deliveryRepo, deliveryEntity, "assign courier"); err != nil {
		return err
	}
	if err = updateCourier(ctx, courierRepo, courierEntity, "assign courier"); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Stop(deliveryEntity.ID())
	return nil
}

func (h *AssignCourierCommandHandler) checkEligibility(
	ctx context.Context,
	deliveryEntity *delivery.Delivery,
	courierEntity *courier.Courier,
) error {
	if courierEntity.HasActiveEmployment() {
		return nil
	}

	task, err := h.tasks.Get(ctx, deliveryEntity.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if err == nil && task.HasNotified(courierEntity.ID()) {
		return nil
	}

	return errs.NewCourierUnavailableError(courierEntity.ID().String(), "not employed and not invited to this delivery")
}
