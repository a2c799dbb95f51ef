package paymentrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add saves the payment together with its delivery links.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewInvalidStateErrorWithReason(
			"open payment", aggregate.Status().String(), "a delivery already has an active payment",
		)
	}
	return err
}

// Update is a compare-and-swap on the payment version. Delivery links keep
// their deliveries; only their active flag follows the payment status.
func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&PaymentDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return db.Model(&PaymentDeliveryDTO{}).
			Where("payment_id = ?", dto.ID).
			Update("active", aggregate.Status().IsActive()).Error
	}

	var count int64
	if err := db.Model(&PaymentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
	}
	return errs.NewStaleObjectError("payment", aggregate.ID().String(), aggregate.Version())
}

func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.withDeliveries(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPaymentRepository) GetActiveByDeliveryIDs(
	ctx context.Context,
	deliveryIDs []kernel.UUID,
) ([]*payment.Payment, error) {
	if len(deliveryIDs) == 0 {
		return []*payment.Payment{}, nil
	}
	ids := make([]uuid.UUID, 0, len(deliveryIDs))
	for _, id := range deliveryIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, id.Google())
	}

	linked := r.db.WithContext(ctx).Model(&PaymentDeliveryDTO{}).
		Select("payment_id").
		Where("delivery_id IN ?", ids)

	var dtos []PaymentDTO
	if err := r.withDeliveries(ctx).
		Where("status IN ? AND id IN (?)",
			[]string{payment.StatusPending.String(), payment.StatusCompleted.String()}, linked).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetDuePending returns PENDING payments whose deadline is at or before now,
// earliest deadline first. Payments without a deadline never become due.
func (r *GormPaymentRepository) GetDuePending(ctx context.Context, now time.Time) ([]*payment.Payment, error) {
	var dtos []PaymentDTO
	if err := r.withDeliveries(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", payment.StatusPending.String(), now.UTC()).
		Order("expires_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []PaymentDTO) ([]*payment.Payment, error) {
	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *GormPaymentRepository) withDeliveries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Deliveries", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
