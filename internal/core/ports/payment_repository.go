package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
)

type PaymentRepository interface {
	Add(ctx context.Context, payment *payment.Payment) error

	// Update is optimistic on the payment version, like DeliveryRepository.Update.
	Update(ctx context.Context, payment *payment.Payment) error

	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetActiveByDeliveryIDs returns the PENDING or COMPLETED payments linked to
	// any of the deliveries.
	GetActiveByDeliveryIDs(ctx context.Context, deliveryIDs []kernel.UUID) ([]*payment.Payment, error)

	// GetDuePending returns PENDING payments whose expiry deadline is at or before now.
	GetDuePending(ctx context.Context, now time.Time) ([]*payment.Payment, error)
}
