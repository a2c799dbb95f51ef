package payment

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusExpired, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// IsActive reports whether a payment in this status still claims its
// deliveries. A delivery has at most one active payment.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusCompleted
}

func (s Status) String() string {
	return string(s)
}

// PayerCategory separates end customers paying by PIX from trusted business
// clients that are invoiced. Only customer payments are reverted on expiry.
type PayerCategory string

const (
	PayerCustomer PayerCategory = "CUSTOMER"
	PayerClient   PayerCategory = "CLIENT"
)

func (c PayerCategory) Validate() error {
	switch c {
	case PayerCustomer, PayerClient:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payerCategory", fmt.Errorf("%q is not a valid payer category", string(c)))
	}
}
