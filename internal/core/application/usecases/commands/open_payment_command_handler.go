package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// PaymentConfig holds the payout and PIX settings used when opening payments.
type PaymentConfig struct {
	Split               services.SplitConfig
	PlatformRecipientID string
	TTL                 time.Duration
}

// OpenPaymentCommandHandler creates a PENDING payment for assigned deliveries
// and registers a split order with the payment processor.
//
// The amount is the sum of the deliveries' shipping fees. Each delivery is
// split between its courier, its organizer and the platform, and the shares
// are merged into one instruction set. Customer payments expire after TTL.
//
// A delivery belongs to at most one PENDING or COMPLETED payment; opening a
// second one fails with InvalidStateError.
//
// The processor call is best-effort: when it fails the payment is still stored
// without an order reference, and the expiration sweep eventually reclaims it.
type OpenPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	processor  ports.PaymentProcessor
	calculator services.PayoutSplitCalculator
	cfg        PaymentConfig
	logger     *slog.Logger
}

func NewOpenPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	processor ports.PaymentProcessor,
	cfg PaymentConfig,
	logger *slog.Logger,
) OpenPaymentCommandHandler {
	return OpenPaymentCommandHandler{
		uowFactory: uowFactory,
		processor:  processor,
		calculator: services.NewPayoutSplitCalculator(),
		cfg:        cfg,
		logger:     logger.With("component", "open_payment"),
	}
}

func (h *OpenPaymentCommandHandler) Handle(ctx context.Context, cmd OpenPaymentCommand) error {
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

	deliveries, err := h.loadDeliveries(ctx, uow.DeliveryRepository(), cmd.DeliveryIDs())
	if err != nil {
		return err
	}

	var amount int64
	shares := make([]services.DeliveryShare, 0, len(deliveries))
	items := make([]ports.LineItem, 0, len(deliveries))
	for _, d := range deliveries {
		if err = checkPayable(d); err != nil {
			return err
		}

		split, err := h.calculator.ComputeSplit(d.ShippingFee(), h.cfg.Split, d.OrganizerID() != nil)
		if err != nil {
			return err
		}

		recipients := services.SplitRecipients{
			CourierID:  d.CourierID().String(),
			PlatformID: h.cfg.PlatformRecipientID,
		}
		if d.OrganizerID() != nil {
			recipients.OrganizerID = d.OrganizerID().String()
		}

		amount += d.ShippingFee()
		shares = append(shares, services.DeliveryShare{Amount: d.ShippingFee(), Split: split, Recipients: recipients})
		items = append(items, ports.LineItem{
			Code:        d.ID().String(),
			Description: fmt.Sprintf("%s %s -> %s", d.Type(), d.Route().OriginAddress(), d.Route().DestinationAddress()),
			Amount:      d.ShippingFee(),
			Quantity:    1,
		})
	}

	active, err := uow.PaymentRepository().GetActiveByDeliveryIDs(ctx, cmd.DeliveryIDs())
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return errs.NewInvalidStateErrorWithReason("open payment", active[0].Status().String(),
			fmt.Sprintf("payment %s already covers a requested delivery", active[0].ID()))
	}

	now := time.Now()
	var expiresAt *time.Time
	if cmd.PayerCategory() == payment.PayerCustomer {
		at := now.Add(h.cfg.TTL)
		expiresAt = &at
	}

	paymentEntity, err := payment.NewPayment(
		cmd.PaymentID(), amount, cmd.PayerID(), cmd.PayerCategory(), cmd.DeliveryIDs(), expiresAt, now,
	)
	if err != nil {
		return err
	}

	orderRef, err := h.processor.CreateSplitOrder(ctx, ports.SplitOrderRequest{
		ReferenceID: paymentEntity.ID().String(),
		Payer: ports.PayerInfo{
			ID:       cmd.PayerID().String(),
			Category: string(cmd.PayerCategory()),
		},
		Items:     items,
		Splits:    h.calculator.ConsolidatedInstructions(shares),
		ExpiresIn: h.cfg.TTL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "split order was not created, payment stays without order reference",
			"payment_id", paymentEntity.ID().String(),
			"error", err,
		)
	} else if err = paymentEntity.AttachOrderRef(orderRef); err != nil {
		return err
	}

	if err = uow.PaymentRepository().Add(ctx, paymentEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *OpenPaymentCommandHandler) loadDeliveries(
	ctx context.Context,
	repo ports.DeliveryRepository,
	ids []kernel.UUID,
) ([]*delivery.Delivery, error) {
	deliveries, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[kernel.UUID]*delivery.Delivery, len(deliveries))
	for _, d := range deliveries {
		found[d.ID()] = d
	}

	ordered := make([]*delivery.Delivery, 0, len(ids))
	for _, id := range ids {
		d, ok := found[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("deliveryID", id)
		}
		ordered = append(ordered, d)
	}
	return ordered, nil
}

// checkPayable rejects deliveries that cannot be charged: cancelled, already
// paid, or still without a courier to receive the payout.
func checkPayable(d *delivery.Delivery) error {
	switch {
	case d.Status() == delivery.Cancelled:
		return errs.NewAlreadyTerminalError("open payment", d.Status().String())
	case d.IsPaymentSettled():
		return errs.NewInvalidStateErrorWithReason("open payment", d.Status().String(), "delivery is already paid")
	case d.CourierID() == nil:
		return errs.NewInvalidStateErrorWithReason("open payment", d.Status().String(), "no courier assigned")
	}
	return nil
}
