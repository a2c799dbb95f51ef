package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCreateClientContractCommandIsNotConstructed = errors.New(
	"CreateClientContractCommand must be created via NewCreateClientContractCommand constructor",
)

// CreateClientContractCommand links a client to an organization. A primary
// contract scopes the first dispatch tier for the client's deliveries.
type CreateClientContractCommand struct { //nolint:recvcheck //using for validation
	contractID     kernel.UUID
	clientID       kernel.UUID
	organizationID kernel.UUID
	primary        bool

	guard guard.ConstructorGuard
}

func NewCreateClientContractCommand(
	clientID, organizationID kernel.UUID,
	primary bool,
) (CreateClientContractCommand, error) {
	if err := errors.Join(clientID.Validate(), organizationID.Validate()); err != nil {
		return CreateClientContractCommand{}, err
	}

	return CreateClientContractCommand{
		contractID:     kernel.NewUUID(),
		clientID:       clientID,
		organizationID: organizationID,
		primary:        primary,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateClientContractCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientContractCommandIsNotConstructed)
}

func (c CreateClientContractCommand) ContractID() kernel.UUID     { return c.contractID }
func (c CreateClientContractCommand) ClientID() kernel.UUID       { return c.clientID }
func (c CreateClientContractCommand) OrganizationID() kernel.UUID { return c.organizationID }
func (c CreateClientContractCommand) Primary() bool               { return c.primary }
