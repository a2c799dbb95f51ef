package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrLinkCourierCommandIsNotConstructed = errors.New(
	"LinkCourierCommand must be created via NewLinkCourierCommand constructor",
)

// LinkCourierCommand adds or removes a courier's employment link with an
// organization. Active links put the courier in the organization's primary
// and secondary dispatch tiers.
type LinkCourierCommand struct { //nolint:recvcheck //using for validation
	courierID      kernel.UUID
	organizationID kernel.UUID
	active         bool

	guard guard.ConstructorGuard
}

func NewLinkCourierCommand(courierID, organizationID kernel.UUID, active bool) (LinkCourierCommand, error) {
	if err := errors.Join(courierID.Validate(), organizationID.Validate()); err != nil {
		return LinkCourierCommand{}, err
	}

	return LinkCourierCommand{
		courierID:      courierID,
		organizationID: organizationID,
		active:         active,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c LinkCourierCommand) Validate() error {
	return c.guard.Validate(ErrLinkCourierCommandIsNotConstructed)
}

func (c LinkCourierCommand) CourierID() kernel.UUID      { return c.courierID }
func (c LinkCourierCommand) OrganizationID() kernel.UUID { return c.organizationID }
func (c LinkCourierCommand) Active() bool                { return c.active }
