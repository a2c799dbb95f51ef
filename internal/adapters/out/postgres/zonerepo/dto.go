// Package zonerepo persists special zones.
package zonerepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/zone"

	"github.com/google/uuid"
)

type SpecialZoneDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name         string      `gorm:"type:varchar(255);not null"`
	Center       LocationDTO `gorm:"embedded;embeddedPrefix:center_"`
	RadiusMeters float64     `gorm:"type:double precision;not null"`
	Type         string      `gorm:"type:varchar(16);not null"`
	Active       bool        `gorm:"not null;index"`
}

func (SpecialZoneDTO) TableName() string {
	return "special_zones"
}

type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

func fromDomain(z *zone.SpecialZone) SpecialZoneDTO {
	return SpecialZoneDTO{
		ID:   z.ID().Google(),
		Name: z.Name(),
		Center: LocationDTO{
			Latitude:  z.Center().Latitude(),
			Longitude: z.Center().Longitude(),
		},
		RadiusMeters: z.RadiusMeters(),
		Type:         string(z.Type()),
		Active:       z.IsActive(),
	}
}

func toDomain(dto SpecialZoneDTO) (*zone.SpecialZone, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	center, err := kernel.NewLocation(dto.Center.Latitude, dto.Center.Longitude)
	if err != nil {
		return nil, err
	}
	return zone.NewSpecialZone(id, dto.Name, center, dto.RadiusMeters, zone.Type(dto.Type), dto.Active)
}
