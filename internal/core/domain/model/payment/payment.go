package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment settles one or more deliveries. A PENDING payment with an expiry
// deadline (PIX) becomes due for reconciliation once the deadline passes.
type Payment struct {
	id               kernel.UUID
	amount           int64
	status           Status
	payerID          kernel.UUID
	payerCategory    PayerCategory
	expiresAt        *time.Time
	deliveryIDs      []kernel.UUID
	providerOrderRef string
	createdAt        time.Time
	version          int64
	guard            guard.ConstructorGuard
}

func NewPayment(
	id kernel.UUID,
	amount int64,
	payerID kernel.UUID,
	payerCategory PayerCategory,
	deliveryIDs []kernel.UUID,
	expiresAt *time.Time,
	now time.Time,
) (*Payment, error) {
	return RestorePayment(id, amount, StatusPending, payerID, payerCategory, deliveryIDs, expiresAt, "", now, 0)
}

func RestorePayment(
	id kernel.UUID,
	amount int64,
	status Status,
	payerID kernel.UUID,
	payerCategory PayerCategory,
	deliveryIDs []kernel.UUID,
	expiresAt *time.Time,
	providerOrderRef string,
	createdAt time.Time,
	version int64,
) (*Payment, error) {
	p := &Payment{
		id:               id,
		amount:           amount,
		status:           status,
		payerID:          payerID,
		payerCategory:    payerCategory,
		providerOrderRef: strings.TrimSpace(providerOrderRef),
		createdAt:        createdAt.UTC(),
		version:          version,
		guard:            guard.NewConstructorGuard(),
	}
	if expiresAt != nil {
		at := expiresAt.UTC()
		p.expiresAt = &at
	}

	if err := errors.Join(
		id.Validate(),
		payerID.Validate(),
		status.Validate(),
		payerCategory.Validate(),
		p.setAmount(amount),
		p.setDeliveryIDs(deliveryIDs),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID              { return p.id }
func (p *Payment) Amount() int64                { return p.amount }
func (p *Payment) Status() Status               { return p.status }
func (p *Payment) PayerID() kernel.UUID         { return p.payerID }
func (p *Payment) PayerCategory() PayerCategory { return p.payerCategory }
func (p *Payment) ExpiresAt() *time.Time        { return p.expiresAt }
func (p *Payment) ProviderOrderRef() string     { return p.providerOrderRef }
func (p *Payment) CreatedAt() time.Time         { return p.createdAt }
func (p *Payment) Version() int64               { return p.version }

func (p *Payment) DeliveryIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(p.deliveryIDs))
	copy(out, p.deliveryIDs)
	return out
}

// IsDue reports whether the payment is still PENDING past its expiry deadline.
func (p *Payment) IsDue(now time.Time) bool {
	return p.status == StatusPending && p.expiresAt != nil && !now.Before(*p.expiresAt)
}

// IsEndCustomer reports whether the payer is subject to automatic reversion on expiry.
func (p *Payment) IsEndCustomer() bool {
	return p.payerCategory == PayerCustomer
}

func (p *Payment) Expire() error {
	return p.transition("expire", StatusExpired)
}

func (p *Payment) Complete() error {
	return p.transition("complete", StatusCompleted)
}

func (p *Payment) Fail() error {
	return p.transition("fail", StatusFailed)
}

func (p *Payment) Cancel() error {
	return p.transition("cancel", StatusCancelled)
}

func (p *Payment) AttachOrderRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("providerOrderRef")
	}
	p.providerOrderRef = ref
	return nil
}

func (p *Payment) transition(operation string, to Status) error {
	if p.status != StatusPending {
		return errs.NewInvalidStateError(operation+" payment", p.status.String())
	}
	p.status = to
	return nil
}

func (p *Payment) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setDeliveryIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("deliveryIDs")
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("deliveryIDs", fmt.Errorf("duplicate delivery %s", id))
		}
		seen[id] = struct{}{}
	}
	p.deliveryIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
