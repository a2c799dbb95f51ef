// Package courierrepo persists courier availability profiles together with
// their employment links.
package courierrepo

import (
	"time"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name               string              `gorm:"type:varchar(255);not null"`
	Location           LocationDTO         `gorm:"embedded;embeddedPrefix:location_"`
	Availability       string              `gorm:"type:varchar(16);not null;index"`
	PushToken          string              `gorm:"type:varchar(255)"`
	DeliveriesCount    int                 `gorm:"not null;default:0"`
	CancellationsCount int                 `gorm:"not null;default:0"`
	Version            int64               `gorm:"not null;default:0"`
	Employments        []EmploymentLinkDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO is the last reported position. Latitude and longitude are indexed
// for the bounding-box prefilter of GetAvailableWithin.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;index:idx_couriers_location,priority:1"`
	Longitude float64 `gorm:"type:double precision;index:idx_couriers_location,priority:2"`
}

type EmploymentLinkDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	LinkedAt       time.Time `gorm:"not null"`
	Active         bool      `gorm:"not null;default:true"`
}

func (EmploymentLinkDTO) TableName() string {
	return "employment_links"
}

func fromDomain(c *courier.Courier) CourierDTO {
	courierID := c.ID().Google()
	links := make([]EmploymentLinkDTO, 0, len(c.Employments()))
	for _, link := range c.Employments() {
		links = append(links, EmploymentLinkDTO{
			ID:             link.ID().Google(),
			CourierID:      courierID,
			OrganizationID: link.OrganizationID().Google(),
			LinkedAt:       link.LinkedAt(),
			Active:         link.IsActive(),
		})
	}

	return CourierDTO{
		ID:   courierID,
		Name: c.Name(),
		Location: LocationDTO{
			Latitude:  c.Location().Latitude(),
			Longitude: c.Location().Longitude(),
		},
		Availability:       c.Availability().String(),
		PushToken:          c.PushToken(),
		DeliveriesCount:    c.DeliveriesCount(),
		CancellationsCount: c.CancellationsCount(),
		Version:            c.Version(),
		Employments:        links,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	availability, err := courier.ParseAvailability(dto.Availability)
	if err != nil {
		return nil, err
	}

	links := make([]*courier.EmploymentLink, 0, len(dto.Employments))
	for _, linkDTO := range dto.Employments {
		link, linkErr := employmentLinkToDomain(linkDTO)
		if linkErr != nil {
			return nil, linkErr
		}
		links = append(links, link)
	}

	return courier.RestoreCourier(
		id, dto.Name, loc, availability, dto.PushToken, links,
		dto.DeliveriesCount, dto.CancellationsCount, dto.Version,
	)
}

func employmentLinkToDomain(dto EmploymentLinkDTO) (*courier.EmploymentLink, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromGoogle(dto.OrganizationID)
	if err != nil {
		return nil, err
	}
	return courier.RestoreEmploymentLink(id, organizationID, dto.LinkedAt, dto.Active)
}
