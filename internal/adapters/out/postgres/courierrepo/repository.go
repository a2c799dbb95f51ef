package courierrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a new courier with its employment links.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update is a compare-and-swap on the courier version: the row is written only
// if nobody changed it since it was loaded, otherwise StaleObjectError is
// returned. Employment links are upserted, never deleted; unlinking
// deactivates them.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	db := r.db.WithContext(ctx)

	result := db.Model(&CourierDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&CourierDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
		}
		return errs.NewStaleObjectError("courier", aggregate.ID().String(), aggregate.Version())
	}

	if len(dto.Employments) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"active", "linked_at"}),
	}).Create(&dto.Employments).Error
}

func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).Preload("Employments").First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailableWithin prefilters AVAILABLE couriers by the bounding box of the
// search circle.
//
// Example:
//
//	couriers, err := repo.GetAvailableWithin(ctx, pickup, 5)
//	if err != nil {
//		return fmt.Errorf("failed to load nearby couriers: %w", err)
//	}
//	candidates, err := services.NewGeoMatcher().FindAvailable(pickup, 5, couriers, nil)
func (r *GormCourierRepository) GetAvailableWithin(
	ctx context.Context,
	center kernel.Location,
	radiusKm float64,
) ([]*courier.Courier, error) {
	box, err := center.BoundingBox(radiusKm)
	if err != nil {
		return nil, err
	}

	var dtos []CourierDTO
	if err = r.db.WithContext(ctx).
		Preload("Employments").
		Where("availability = ?", courier.Available.String()).
		Where("location_latitude BETWEEN ? AND ?", box.MinLatitude, box.MaxLatitude).
		Where("location_longitude BETWEEN ? AND ?", box.MinLongitude, box.MaxLongitude).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		couriers = append(couriers, c)
	}
	return couriers, nil
}

func (r *GormCourierRepository) GetActiveEmployeeIDs(
	ctx context.Context,
	organizationIDs []kernel.UUID,
) ([]kernel.UUID, error) {
	if len(organizationIDs) == 0 {
		return []kernel.UUID{}, nil
	}

	raw := make([]uuid.UUID, 0, len(organizationIDs))
	for _, id := range organizationIDs {
		raw = append(raw, id.Google())
	}

	var courierIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&EmploymentLinkDTO{}).
		Distinct("courier_id").
		Where("organization_id IN ? AND active = ?", raw, true).
		Order("courier_id").
		Pluck("courier_id", &courierIDs).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(courierIDs))
	for _, rawID := range courierIDs {
		id, err := kernel.UUIDFromGoogle(rawID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
