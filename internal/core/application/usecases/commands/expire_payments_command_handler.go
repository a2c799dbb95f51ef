package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ReconciliationMetrics counts the outcomes of an expiration sweep.
type ReconciliationMetrics interface {
	PaymentExpired()
	DeliveryReverted()
	ReconciliationFailed()
}

// ExpirationReport summarizes one sweep.
type ExpirationReport struct {
	Due      int
	Expired  int
	Skipped  int
	Reverted int
	Failed   int
}

// ExpirePaymentsCommandHandler reconciles PIX payments that lapsed.
//
// For every due customer payment it marks the payment EXPIRED and sends each
// linked delivery that is still waiting for that payment back to PENDING,
// then restarts its dispatch cascade. Each payment is reconciled in its own
// transaction: a failure is logged and counted and the sweep moves on.
//
// Deliveries that moved on since they were read (the courier confirmed, or
// the payment was settled) are left untouched.
//
// The handler logs a sweep summary whenever payments were due, so callers
// only need the report for their own bookkeeping.
//
// Example:
//
//	cmd, _ := NewExpirePaymentsCommand(time.Now())
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if report.Failed > 0 {
//	    return fmt.Errorf("%d payments left unreconciled", report.Failed)
//	}
type ExpirePaymentsCommandHandler struct {
	uowFactory PaymentUoWFactory
	dispatcher ports.Dispatcher
	policy     services.PaymentTimingPolicy
	metrics    ReconciliationMetrics
	logger     *slog.Logger
}

func NewExpirePaymentsCommandHandler(
	uowFactory PaymentUoWFactory,
	dispatcher ports.Dispatcher,
	policy services.PaymentTimingPolicy,
	metrics ReconciliationMetrics,
	logger *slog.Logger,
) ExpirePaymentsCommandHandler {
	return ExpirePaymentsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		policy:     policy,
		metrics:    metrics,
		logger:     logger.With("component", "payment_expiration"),
	}
}

// Handle returns an error only when the due payments cannot be listed.
func (h *ExpirePaymentsCommandHandler) Handle(ctx context.Context, cmd ExpirePaymentsCommand) (ExpirationReport, error) {
	if err := cmd.Validate(); err != nil {
		return ExpirationReport{}, err
	}

	due, err := h.listDue(ctx, cmd)
	if err != nil {
		return ExpirationReport{}, err
	}

	report := ExpirationReport{Due: len(due)}
	for _, p := range due {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		if !p.IsEndCustomer() {
			report.Skipped++
			continue
		}

		reverted, expired, err := h.reconcile(ctx, p.ID(), cmd)
		if err != nil {
			report.Failed++
			h.metrics.ReconciliationFailed()
			h.logger.ErrorContext(ctx, "payment reconciliation failed",
				"payment_id", p.ID().String(),
				"error", errs.NewReconciliationError(p.ID().String(), err),
			)
			continue
		}
		if !expired {
			report.Skipped++
			continue
		}

		report.Expired++
		h.metrics.PaymentExpired()
		for _, deliveryID := range reverted {
			report.Reverted++
			h.metrics.DeliveryReverted()
			h.dispatcher.Start(deliveryID)
		}
	}

	if report.Due > 0 {
		h.logger.InfoContext(ctx, "payment expiration sweep finished",
			"due", report.Due,
			"expired", report.Expired,
			"skipped", report.Skipped,
			"reverted", report.Reverted,
			"failed", report.Failed,
		)
	}
	return report, nil
}

func (h *ExpirePaymentsCommandHandler) listDue(ctx context.Context, cmd ExpirePaymentsCommand) ([]*payment.Payment, error) {
	uow := h.uowFactory.Create()
	return uow.PaymentRepository().GetDuePending(ctx, cmd.Now())
}

// reconcile expires one payment and reverts its waiting deliveries. expired is
// false when the payment was no longer due by the time it was re-read.
func (h *ExpirePaymentsCommandHandler) reconcile(
	ctx context.Context,
	paymentID kernel.UUID,
	cmd ExpirePaymentsCommand,
) (reverted []kernel.UUID, expired bool, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	deliveryRepo := uow.DeliveryRepository()

	p, err := paymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, false, err
	}
	if !p.IsDue(cmd.Now()) || !p.IsEndCustomer() {
		return nil, false, nil
	}

	if err = p.Expire(); err != nil {
		return nil, false, err
	}
	if err = paymentRepo.Update(ctx, p); err != nil {
		if errors.Is(err, errs.ErrStaleObject) {
			return nil, false, nil
		}
		return nil, false, err
	}

	deliveries, err := deliveryRepo.GetByIDs(ctx, p.DeliveryIDs())
	if err != nil {
		return nil, false, err
	}

	for _, d := range deliveries {
		if !h.policy.IsRevertible(d) {
			continue
		}

		courierID, ok := d.RevertToPending()
		if !ok {
			continue
		}

		if err = deliveryRepo.Update(ctx, d); err != nil {
			if errors.Is(err, errs.ErrStaleObject) {
				h.logger.InfoContext(ctx, "delivery changed during reconciliation, leaving it as is",
					"payment_id", paymentID.String(),
					"delivery_id", d.ID().String(),
				)
				continue
			}
			return nil, false, err
		}

		attrs := []any{"payment_id", paymentID.String(), "delivery_id", d.ID().String()}
		if courierID != nil {
			attrs = append(attrs, "courier_id", courierID.String())
		}
		h.logger.InfoContext(ctx, "delivery reverted to pending after payment expiry", attrs...)
		reverted = append(reverted, d.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}
	return reverted, true, nil
}
