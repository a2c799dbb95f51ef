package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a courier profile. The push token and the
// employing organization are optional at registration; both can be set later
// with RegisterPushTokenCommand and LinkCourierCommand.
//
// Example:
//
//	orgID := kernel.NewUUID()
//	cmd, err := NewCreateCourierCommand("Ana Souza", kernel.MustNewLocation(-23.5505, -46.6333), "fcm:abc", &orgID)
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID      kernel.UUID
	name           string
	location       kernel.Location
	pushToken      string
	organizationID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateCourierCommand(
	name string,
	location kernel.Location,
	pushToken string,
	organizationID *kernel.UUID,
) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		courierID: kernel.NewUUID(),
		pushToken: strings.TrimSpace(pushToken),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setLocation(location),
		command.setOrganizationID(organizationID),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID       { return c.courierID }
func (c CreateCourierCommand) Name() string                 { return c.name }
func (c CreateCourierCommand) Location() kernel.Location    { return c.location }
func (c CreateCourierCommand) PushToken() string            { return c.pushToken }
func (c CreateCourierCommand) OrganizationID() *kernel.UUID { return c.organizationID }

func (c *CreateCourierCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *CreateCourierCommand) setOrganizationID(organizationID *kernel.UUID) error {
	if organizationID == nil {
		return nil
	}
	if err := organizationID.Validate(); err != nil {
		return err
	}

	id := *organizationID
	c.organizationID = &id
	return nil
}
