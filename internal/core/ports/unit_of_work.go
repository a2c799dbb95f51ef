package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes repositories to one database transaction. Repositories
// obtained before Begin (or after Commit) run outside any transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	DeliveryRepository() DeliveryRepository

	CourierRepository() CourierRepository

	ContractRepository() ContractRepository

	PaymentRepository() PaymentRepository

	SpecialZoneRepository() SpecialZoneRepository
}
