package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler completes a payment and releases every linked
// delivery from payment-wait. Confirming an already completed payment is a
// no-op so processor webhooks may be redelivered.
type ConfirmPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	logger     *slog.Logger
}

func NewConfirmPaymentCommandHandler(uowFactory PaymentUoWFactory, logger *slog.Logger) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "confirm_payment"),
	}
}

func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	paymentRepo := uow.PaymentRepository()
	deliveryRepo := uow.DeliveryRepository()

	paymentEntity, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return err
	}
	if paymentEntity.Status() == payment.StatusCompleted {
		return nil
	}

	if err = paymentEntity.Complete(); err != nil {
		return err
	}

	deliveries, err := deliveryRepo.GetByIDs(ctx, paymentEntity.DeliveryIDs())
	if err != nil {
		return err
	}

	for _, d := range deliveries {
		if d.Status() == delivery.Cancelled {
			h.logger.WarnContext(ctx, "payment confirmed for a cancelled delivery",
				"payment_id", paymentEntity.ID().String(),
				"delivery_id", d.ID().String(),
			)
			continue
		}
		if d.IsPaymentSettled() {
			continue
		}
		if err = d.ConfirmPayment(); err != nil {
			return err
		}
		if err = updateDelivery(ctx, deliveryRepo, d, "confirm payment"); err != nil {
			return err
		}
	}

	if err = paymentRepo.Update(ctx, paymentEntity); err != nil {
		if errors.Is(err, errs.ErrStaleObject) {
			return errs.NewInvalidStateErrorWithReason(
				"confirm payment", paymentEntity.Status().String(), "payment was modified concurrently",
			)
		}
		return err
	}

	return uow.Commit(ctx)
}
