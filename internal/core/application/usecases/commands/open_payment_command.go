package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrOpenPaymentCommandIsNotConstructed = errors.New(
	"OpenPaymentCommand must be created via NewOpenPaymentCommand constructor",
)

// OpenPaymentCommand requests one payment covering one or more deliveries.
// Several deliveries in a single command produce a consolidated payment.
//
// Example:
//
//	cmd, err := NewOpenPaymentCommand(customerID, payment.PayerCustomer, []kernel.UUID{deliveryID})
//	if err != nil {
//	    return err
//	}
//	if err = handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to open payment: %w", err)
//	}
//	fmt.Printf("Payment %s is waiting for PIX", cmd.PaymentID())
type OpenPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID     kernel.UUID
	payerID       kernel.UUID
	payerCategory payment.PayerCategory
	deliveryIDs   []kernel.UUID

	guard guard.ConstructorGuard
}

func NewOpenPaymentCommand(
	payerID kernel.UUID,
	payerCategory payment.PayerCategory,
	deliveryIDs []kernel.UUID,
) (OpenPaymentCommand, error) {
	command := OpenPaymentCommand{
		paymentID:     kernel.NewUUID(),
		payerID:       payerID,
		payerCategory: payerCategory,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		payerID.Validate(),
		payerCategory.Validate(),
		command.setDeliveryIDs(deliveryIDs),
	); err != nil {
		return OpenPaymentCommand{}, err
	}

	return command, nil
}

func (c OpenPaymentCommand) Validate() error {
	return c.guard.Validate(ErrOpenPaymentCommandIsNotConstructed)
}

func (c OpenPaymentCommand) PaymentID() kernel.UUID               { return c.paymentID }
func (c OpenPaymentCommand) PayerID() kernel.UUID                 { return c.payerID }
func (c OpenPaymentCommand) PayerCategory() payment.PayerCategory { return c.payerCategory }

func (c OpenPaymentCommand) DeliveryIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.deliveryIDs))
	copy(out, c.deliveryIDs)
	return out
}

func (c *OpenPaymentCommand) setDeliveryIDs(ids []kernel.UUID) error {
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

	c.deliveryIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
