package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateCourierStatusCommandIsNotConstructed = errors.New(
	"UpdateCourierStatusCommand must be created via NewUpdateCourierStatusCommand constructor",
)

// UpdateCourierStatusCommand is the periodic report of a courier's app: where
// the courier is and whether they take new deliveries.
type UpdateCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	availability courier.Availability
	location     kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateCourierStatusCommand(
	courierID kernel.UUID,
	availability courier.Availability,
	location kernel.Location,
) (UpdateCourierStatusCommand, error) {
	if err := errors.Join(courierID.Validate(), availability.Validate(), location.Validate()); err != nil {
		return UpdateCourierStatusCommand{}, err
	}

	return UpdateCourierStatusCommand{
		courierID:    courierID,
		availability: availability,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierStatusCommandIsNotConstructed)
}

func (c UpdateCourierStatusCommand) CourierID() kernel.UUID             { return c.courierID }
func (c UpdateCourierStatusCommand) Availability() courier.Availability { return c.availability }
func (c UpdateCourierStatusCommand) Location() kernel.Location          { return c.location }
