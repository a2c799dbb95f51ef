package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterPushTokenCommandIsNotConstructed = errors.New(
	"RegisterPushTokenCommand must be created via NewRegisterPushTokenCommand constructor",
)

// RegisterPushTokenCommand binds a device token to a courier. An empty token
// unsubscribes the courier from delivery invitations.
type RegisterPushTokenCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	token     string

	guard guard.ConstructorGuard
}

func NewRegisterPushTokenCommand(courierID kernel.UUID, token string) (RegisterPushTokenCommand, error) {
	if err := courierID.Validate(); err != nil {
		return RegisterPushTokenCommand{}, err
	}

	return RegisterPushTokenCommand{
		courierID: courierID,
		token:     strings.TrimSpace(token),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPushTokenCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPushTokenCommandIsNotConstructed)
}

func (c RegisterPushTokenCommand) CourierID() kernel.UUID { return c.courierID }
func (c RegisterPushTokenCommand) Token() string          { return c.token }
