package zonerepo

import (
	"context"

	"marketplace/internal/core/domain/model/zone"

	"gorm.io/gorm"
)

// GormSpecialZoneRepository implements ports.SpecialZoneRepository using GORM.
type GormSpecialZoneRepository struct {
	db *gorm.DB
}

func NewGormSpecialZoneRepository(db *gorm.DB) *GormSpecialZoneRepository {
	return &GormSpecialZoneRepository{db: db}
}

func (r *GormSpecialZoneRepository) Add(ctx context.Context, aggregate *zone.SpecialZone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetActive returns active zones ordered by id.
func (r *GormSpecialZoneRepository) GetActive(ctx context.Context) ([]*zone.SpecialZone, error) {
	var dtos []SpecialZoneDTO
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	zones := make([]*zone.SpecialZone, 0, len(dtos))
	for _, dto := range dtos {
		z, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}
