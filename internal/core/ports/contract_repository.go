package ports

import (
	"context"

	"marketplace/internal/core/domain/model/contract"
	"marketplace/internal/core/domain/model/kernel"
)

type ContractRepository interface {
	Add(ctx context.Context, contract *contract.ClientContract) error

	// GetPrimaryActive returns errs.ObjectNotFoundError when the client has no primary active contract.
	GetPrimaryActive(ctx context.Context, clientID kernel.UUID) (*contract.ClientContract, error)

	GetActiveSecondary(ctx context.Context, clientID kernel.UUID) ([]*contract.ClientContract, error)
}
