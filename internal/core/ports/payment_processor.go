package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/services"
)

type PayerInfo struct {
	ID       string
	Category string
}

type LineItem struct {
	Code        string
	Description string
	Amount      int64
	Quantity    int
}

type SplitOrderRequest struct {
	ReferenceID string
	Payer       PayerInfo
	Items       []LineItem
	Splits      []services.SplitInstruction
	ExpiresIn   time.Duration
}

// PaymentProcessor creates split orders at the payment gateway. Confirmation
// arrives later out of band (webhook).
type PaymentProcessor interface {
	CreateSplitOrder(ctx context.Context, request SplitOrderRequest) (orderReference string, err error)
}
