package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeliveryActionCommandIsNotConstructed = errors.New(
	"DeliveryActionCommand must be created via NewDeliveryActionCommand constructor",
)

// DeliveryActionCommand identifies a courier acting on a delivery. It is the
// input of AssignCourier, ConfirmPickup, StartTransit and CompleteDelivery.
//
// Example:
//
//	cmd, err := NewDeliveryActionCommand(deliveryID, courierID)
//	if err != nil {
//	    return err
//	}
//	err = confirmPickupHandler.Handle(ctx, cmd)
type DeliveryActionCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeliveryActionCommand(deliveryID, courierID kernel.UUID) (DeliveryActionCommand, error) {
	if err := errors.Join(deliveryID.Validate(), courierID.Validate()); err != nil {
		return DeliveryActionCommand{}, err
	}

	return DeliveryActionCommand{
		deliveryID: deliveryID,
		courierID:  courierID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeliveryActionCommand) Validate() error {
	return c.guard.Validate(ErrDeliveryActionCommandIsNotConstructed)
}

func (c DeliveryActionCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c DeliveryActionCommand) CourierID() kernel.UUID  { return c.courierID }
