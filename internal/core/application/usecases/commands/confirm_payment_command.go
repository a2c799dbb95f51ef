package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand reports that the processor settled a payment.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(paymentID kernel.UUID) (ConfirmPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
