// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// CourierRepoFactory provides access to courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// ContractRepoFactory provides access to client contract repository within a transaction.
	ContractRepoFactory interface {
		ContractRepository() ports.ContractRepository
	}

	// PaymentRepoFactory provides access to payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// ZoneRepoFactory provides access to special zone repository within a transaction.
	ZoneRepoFactory interface {
		SpecialZoneRepository() ports.SpecialZoneRepository
	}

	// DeliveryUoW manages transactions for operations on a single delivery.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// CourierUoW manages transactions for courier profile operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	ContractUoW interface {
		TxManager
		ContractRepoFactory
	}

	ContractUoWFactory interface {
		Create() ContractUoW
	}

	ZoneUoW interface {
		TxManager
		ZoneRepoFactory
	}

	ZoneUoWFactory interface {
		Create() ZoneUoW
	}

	// AssignmentUoW spans a delivery and the courier attached to it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   deliveryRepo := uow.DeliveryRepository()
	//   courierRepo := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		DeliveryRepoFactory
		CourierRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// PaymentUoW spans a payment and the deliveries it settles.
	PaymentUoW interface {
		TxManager
		DeliveryRepoFactory
		PaymentRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}
)
