package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand carries the delivery to cancel and a human readable reason.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(deliveryID kernel.UUID, reason string) (CancelDeliveryCommand, error) {
	command := CancelDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setReason(reason),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return command, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c CancelDeliveryCommand) Reason() string          { return c.reason }

func (c *CancelDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *CancelDeliveryCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
