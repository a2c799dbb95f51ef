// Package deliveryrepo persists Delivery aggregates in the deliveries table.
package deliveryrepo

import (
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the row layout of a delivery. Version backs the optimistic
// compare-and-swap performed by Update.
type DeliveryDTO struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ClientID           uuid.UUID   `gorm:"type:uuid;not null;index"`
	OrganizerID        *uuid.UUID  `gorm:"type:uuid;index"`
	CourierID          *uuid.UUID  `gorm:"type:uuid;index"`
	Origin             LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	OriginAddress      string      `gorm:"type:varchar(512);not null"`
	Destination        LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	DestinationAddress string      `gorm:"type:varchar(512);not null"`
	Type               string      `gorm:"type:varchar(16);not null"`
	VehicleType        string      `gorm:"type:varchar(16);not null"`
	Status             string      `gorm:"type:varchar(16);not null;index"`
	AwaitingPayment    bool        `gorm:"not null;default:false"`
	PaymentCompleted   bool        `gorm:"not null;default:false"`
	PaymentCaptured    bool        `gorm:"not null;default:false"`
	TotalAmount        int64       `gorm:"type:bigint;not null"`
	ShippingFee        int64       `gorm:"type:bigint;not null"`
	DistanceKm         float64     `gorm:"type:double precision;not null"`
	CancellationReason string      `gorm:"type:text"`
	CreatedAt          time.Time   `gorm:"not null;index"`
	AcceptedAt         *time.Time
	PickedUpAt         *time.Time
	InTransitAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	Version            int64 `gorm:"not null;default:0"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	route := d.Route()
	return DeliveryDTO{
		ID:                 d.ID().Google(),
		ClientID:           d.ClientID().Google(),
		OrganizerID:        optionalID(d.OrganizerID()),
		CourierID:          optionalID(d.CourierID()),
		Origin:             LocationDTO{Latitude: route.Origin().Latitude(), Longitude: route.Origin().Longitude()},
		OriginAddress:      route.OriginAddress(),
		Destination:        LocationDTO{Latitude: route.Destination().Latitude(), Longitude: route.Destination().Longitude()},
		DestinationAddress: route.DestinationAddress(),
		Type:               d.Type().String(),
		VehicleType:        d.VehicleType().String(),
		Status:             d.Status().String(),
		AwaitingPayment:    d.IsAwaitingPayment(),
		PaymentCompleted:   d.PaymentCompleted(),
		PaymentCaptured:    d.PaymentCaptured(),
		TotalAmount:        d.TotalAmount(),
		ShippingFee:        d.ShippingFee(),
		DistanceKm:         d.DistanceKm(),
		CancellationReason: d.CancellationReason(),
		CreatedAt:          d.CreatedAt(),
		AcceptedAt:         d.AcceptedAt(),
		PickedUpAt:         d.PickedUpAt(),
		InTransitAt:        d.InTransitAt(),
		CompletedAt:        d.CompletedAt(),
		CancelledAt:        d.CancelledAt(),
		Version:            d.Version(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromGoogle(dto.ClientID)
	if err != nil {
		return nil, err
	}
	organizerID, err := restoreOptionalID(dto.OrganizerID)
	if err != nil {
		return nil, err
	}
	courierID, err := restoreOptionalID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewLocation(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewLocation(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}
	route, err := delivery.NewRoute(origin, dto.OriginAddress, destination, dto.DestinationAddress)
	if err != nil {
		return nil, err
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(delivery.Snapshot{
		ID:                 id,
		ClientID:           clientID,
		OrganizerID:        organizerID,
		CourierID:          courierID,
		Route:              route,
		Type:               delivery.Type(dto.Type),
		VehicleType:        delivery.VehicleType(dto.VehicleType),
		Status:             status,
		AwaitingPayment:    dto.AwaitingPayment,
		PaymentCompleted:   dto.PaymentCompleted,
		PaymentCaptured:    dto.PaymentCaptured,
		TotalAmount:        dto.TotalAmount,
		ShippingFee:        dto.ShippingFee,
		DistanceKm:         dto.DistanceKm,
		CancellationReason: dto.CancellationReason,
		CreatedAt:          dto.CreatedAt.UTC(),
		AcceptedAt:         utc(dto.AcceptedAt),
		PickedUpAt:         utc(dto.PickedUpAt),
		InTransitAt:        utc(dto.InTransitAt),
		CompletedAt:        utc(dto.CompletedAt),
		CancelledAt:        utc(dto.CancelledAt),
		Version:            dto.Version,
	})
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Google()
	return &raw
}

func restoreOptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
