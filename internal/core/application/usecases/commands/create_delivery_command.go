package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to publish a new delivery or ride.
// The delivery ID is generated by the constructor so callers can return it
// before the handler finishes.
//
// Example:
//
//	route, _ := delivery.NewRoute(pickup, "Av. Paulista, 1000", dropoff, "Rua Augusta, 500")
//	cmd, err := NewCreateDeliveryCommand(clientID, nil, route, delivery.TypeDelivery, delivery.VehicleAny, 2500, 900)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
//	fmt.Printf("Created delivery %s", cmd.DeliveryID())
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID   kernel.UUID
	clientID     kernel.UUID
	organizerID  *kernel.UUID
	route        delivery.Route
	deliveryType delivery.Type
	vehicleType  delivery.VehicleType
	totalAmount  int64
	shippingFee  int64

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates the request. organizerID may be nil for
// deliveries published without an organization.
func NewCreateDeliveryCommand(
	clientID kernel.UUID,
	organizerID *kernel.UUID,
	route delivery.Route,
	deliveryType delivery.Type,
	vehicleType delivery.VehicleType,
	totalAmount, shippingFee int64,
) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		deliveryID:   kernel.NewUUID(),
		organizerID:  organizerID,
		deliveryType: deliveryType,
		vehicleType:  vehicleType,
		guard:        guard.NewConstructorGuard(),
	}

	var organizerErr error
	if organizerID != nil {
		organizerErr = organizerID.Validate()
	}

	if err := errors.Join(
		command.setClientID(clientID),
		organizerErr,
		command.setRoute(route),
		deliveryType.Validate(),
		vehicleType.Validate(),
		command.setAmounts(totalAmount, shippingFee),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID           { return c.deliveryID }
func (c CreateDeliveryCommand) ClientID() kernel.UUID             { return c.clientID }
func (c CreateDeliveryCommand) OrganizerID() *kernel.UUID         { return c.organizerID }
func (c CreateDeliveryCommand) Route() delivery.Route             { return c.route }
func (c CreateDeliveryCommand) Type() delivery.Type               { return c.deliveryType }
func (c CreateDeliveryCommand) VehicleType() delivery.VehicleType { return c.vehicleType }
func (c CreateDeliveryCommand) TotalAmount() int64                { return c.totalAmount }
func (c CreateDeliveryCommand) ShippingFee() int64                { return c.shippingFee }

func (c *CreateDeliveryCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.clientID = id
	return nil
}

func (c *CreateDeliveryCommand) setRoute(route delivery.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	c.route = route
	return nil
}

func (c *CreateDeliveryCommand) setAmounts(totalAmount, shippingFee int64) error {
	if totalAmount < 0 {
		return errs.NewValueIsOutOfRangeError("totalAmount", totalAmount, 0, "+inf")
	}
	if shippingFee < 0 {
		return errs.NewValueIsOutOfRangeError("shippingFee", shippingFee, 0, "+inf")
	}

	c.totalAmount = totalAmount
	c.shippingFee = shippingFee
	return nil
}
