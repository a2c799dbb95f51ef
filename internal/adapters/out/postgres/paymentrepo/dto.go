// Package paymentrepo persists payments and the deliveries each one settles.
package paymentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentDTO struct {
	ID               uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Amount           int64                `gorm:"type:bigint;not null"`
	Status           string               `gorm:"type:varchar(16);not null;index:idx_payments_due,priority:1"`
	PayerID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	PayerCategory    string               `gorm:"type:varchar(16);not null"`
	ExpiresAt        *time.Time           `gorm:"index:idx_payments_due,priority:2"`
	ProviderOrderRef string               `gorm:"type:varchar(255)"`
	CreatedAt        time.Time            `gorm:"not null"`
	Version          int64                `gorm:"not null;default:0"`
	Deliveries       []PaymentDeliveryDTO `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

// PaymentDeliveryDTO links a payment to one delivery. Position keeps the order
// in which the deliveries were submitted. Active mirrors the payment status;
// the partial unique index allows one active link per delivery.
type PaymentDeliveryDTO struct {
	PaymentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey;index;index:idx_payment_deliveries_active,unique,where:active"`
	Position   int       `gorm:"not null"`
	Active     bool      `gorm:"not null;default:false"`
}

func (PaymentDeliveryDTO) TableName() string {
	return "payment_deliveries"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	paymentID := p.ID().Google()
	deliveryIDs := p.DeliveryIDs()
	links := make([]PaymentDeliveryDTO, 0, len(deliveryIDs))
	for i, id := range deliveryIDs {
		links = append(links, PaymentDeliveryDTO{
			PaymentID:  paymentID,
			DeliveryID: id.Google(),
			Position:   i,
			Active:     p.Status().IsActive(),
		})
	}

	return PaymentDTO{
		ID:               paymentID,
		Amount:           p.Amount(),
		Status:           p.Status().String(),
		PayerID:          p.PayerID().Google(),
		PayerCategory:    string(p.PayerCategory()),
		ExpiresAt:        p.ExpiresAt(),
		ProviderOrderRef: p.ProviderOrderRef(),
		CreatedAt:        p.CreatedAt(),
		Version:          p.Version(),
		Deliveries:       links,
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	payerID, err := kernel.UUIDFromGoogle(dto.PayerID)
	if err != nil {
		return nil, err
	}

	deliveryIDs := make([]kernel.UUID, 0, len(dto.Deliveries))
	for _, link := range dto.Deliveries {
		deliveryID, idErr := kernel.UUIDFromGoogle(link.DeliveryID)
		if idErr != nil {
			return nil, idErr
		}
		deliveryIDs = append(deliveryIDs, deliveryID)
	}

	return payment.RestorePayment(
		id,
		dto.Amount,
		payment.Status(dto.Status),
		payerID,
		payment.PayerCategory(dto.PayerCategory),
		deliveryIDs,
		dto.ExpiresAt,
		dto.ProviderOrderRef,
		dto.CreatedAt,
		dto.Version,
	)
}
