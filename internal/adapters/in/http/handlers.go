package http

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
)

// CommandHandler is satisfied by the pointer of every command handler.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by read handlers returning a single result.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

type SpecialZoneResolver interface {
	Handle(ctx context.Context, query queries.ResolveSpecialZoneQuery) (queries.SpecialZoneView, bool, error)
}

// Handlers lists the use cases exposed over REST. Every field is required.
type Handlers struct {
	CreateDelivery   CommandHandler[commands.CreateDeliveryCommand]
	AssignCourier    CommandHandler[commands.DeliveryActionCommand]
	ConfirmPickup    CommandHandler[commands.DeliveryActionCommand]
	StartTransit     CommandHandler[commands.DeliveryActionCommand]
	CompleteDelivery CommandHandler[commands.DeliveryActionCommand]
	CancelDelivery   CommandHandler[commands.CancelDeliveryCommand]

	CreateCourier       CommandHandler[commands.CreateCourierCommand]
	UpdateCourierStatus CommandHandler[commands.UpdateCourierStatusCommand]
	RegisterPushToken   CommandHandler[commands.RegisterPushTokenCommand]
	LinkCourier         CommandHandler[commands.LinkCourierCommand]

	CreateClientContract CommandHandler[commands.CreateClientContractCommand]
	CreateSpecialZone    CommandHandler[commands.CreateSpecialZoneCommand]

	OpenPayment    CommandHandler[commands.OpenPaymentCommand]
	ConfirmPayment CommandHandler[commands.ConfirmPaymentCommand]

	GetDelivery         QueryHandler[queries.GetDeliveryQuery, queries.DeliveryView]
	GetActiveDeliveries QueryHandler[queries.GetActiveDeliveriesQuery, []queries.DeliveryView]
	ResolveSpecialZone  SpecialZoneResolver
}
