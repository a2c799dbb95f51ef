package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Location struct {
	Latitude  float64 `json:"latitude"  example:"-23.5614"`
	Longitude float64 `json:"longitude" example:"-46.6559"`
}

func (l Location) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(l.Latitude, l.Longitude)
}

func locationFromDomain(l kernel.Location) Location {
	return Location{Latitude: l.Latitude(), Longitude: l.Longitude()}
}

type CreatedResponse struct {
	ID string `json:"id" format:"uuid"`
}

type NewDelivery struct {
	ClientID           string   `json:"clientId"                format:"uuid"`
	OrganizerID        *string  `json:"organizerId,omitempty"   format:"uuid"`
	Origin             Location `json:"origin"`
	OriginAddress      string   `json:"originAddress"`
	Destination        Location `json:"destination"`
	DestinationAddress string   `json:"destinationAddress"`
	Type               string   `json:"type"                    enums:"DELIVERY,RIDE"`
	VehicleType        string   `json:"vehicleType,omitempty"   enums:"ANY,MOTORCYCLE,CAR"`
	TotalAmount        int64    `json:"totalAmount"`
	ShippingFee        int64    `json:"shippingFee"`
}

type CourierAction struct {
	CourierID string `json:"courierId" format:"uuid"`
}

type CancelDelivery struct {
	Reason string `json:"reason"`
}

type Delivery struct {
	ID                 string     `json:"id"`
	ClientID           string     `json:"clientId"`
	OrganizerID        *string    `json:"organizerId,omitempty"`
	CourierID          *string    `json:"courierId,omitempty"`
	Type               string     `json:"type"`
	VehicleType        string     `json:"vehicleType"`
	Status             string     `json:"status"`
	AwaitingPayment    bool       `json:"awaitingPayment"`
	PaymentCompleted   bool       `json:"paymentCompleted"`
	Origin             Location   `json:"origin"`
	OriginAddress      string     `json:"originAddress"`
	Destination        Location   `json:"destination"`
	DestinationAddress string     `json:"destinationAddress"`
	TotalAmount        int64      `json:"totalAmount"`
	ShippingFee        int64      `json:"shippingFee"`
	DistanceKm         float64    `json:"distanceKm"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	AcceptedAt         *time.Time `json:"acceptedAt,omitempty"`
	PickedUpAt         *time.Time `json:"pickedUpAt,omitempty"`
	InTransitAt        *time.Time `json:"inTransitAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
}

func deliveryFromView(v queries.DeliveryView) Delivery {
	return Delivery{
		ID:                 v.ID.String(),
		ClientID:           v.ClientID.String(),
		OrganizerID:        optionalString(v.OrganizerID),
		CourierID:          optionalString(v.CourierID),
		Type:               v.Type,
		VehicleType:        v.VehicleType,
		Status:             v.Status,
		AwaitingPayment:    v.AwaitingPayment,
		PaymentCompleted:   v.PaymentCompleted,
		Origin:             locationFromDomain(v.Origin),
		OriginAddress:      v.OriginAddress,
		Destination:        locationFromDomain(v.Destination),
		DestinationAddress: v.DestinationAddress,
		TotalAmount:        v.TotalAmount,
		ShippingFee:        v.ShippingFee,
		DistanceKm:         v.DistanceKm,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		AcceptedAt:         v.AcceptedAt,
		PickedUpAt:         v.PickedUpAt,
		InTransitAt:        v.InTransitAt,
		CompletedAt:        v.CompletedAt,
		CancelledAt:        v.CancelledAt,
	}
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

type NewCourier struct {
	Name           string   `json:"name"`
	Location       Location `json:"location"`
	PushToken      string   `json:"pushToken,omitempty"`
	OrganizationID *string  `json:"organizationId,omitempty" format:"uuid"`
}

type CourierStatus struct {
	Availability string   `json:"availability" enums:"AVAILABLE,ON_DELIVERY,OFFLINE,SUSPENDED"`
	Location     Location `json:"location"`
}

type PushToken struct {
	Token string `json:"token"`
}

type EmploymentLink struct {
	Active bool `json:"active"`
}

type NewClientContract struct {
	ClientID       string `json:"clientId"       format:"uuid"`
	OrganizationID string `json:"organizationId" format:"uuid"`
	Primary        bool   `json:"primary"`
}

type NewSpecialZone struct {
	Name         string   `json:"name"`
	Center       Location `json:"center"`
	RadiusMeters float64  `json:"radiusMeters,omitempty"`
	Type         string   `json:"type" enums:"DANGER,HIGH_INCOME"`
}

type SpecialZone struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Center         Location `json:"center"`
	RadiusMeters   float64  `json:"radiusMeters"`
	DistanceMeters float64  `json:"distanceMeters"`
}

func specialZoneFromView(v queries.SpecialZoneView) SpecialZone {
	return SpecialZone{
		ID:             v.ID.String(),
		Name:           v.Name,
		Type:           v.Type,
		Center:         locationFromDomain(v.Center),
		RadiusMeters:   v.RadiusMeters,
		DistanceMeters: v.DistanceMeters,
	}
}

type NewPayment struct {
	PayerID       string   `json:"payerId"       format:"uuid"`
	PayerCategory string   `json:"payerCategory" enums:"CUSTOMER,CLIENT"`
	DeliveryIDs   []string `json:"deliveryIds"`
}

// PaymentEvent is the gateway webhook payload. Data.Code carries the
// reference id the order was created with, which is the payment id.
type PaymentEvent struct {
	ID   string           `json:"id"`
	Type string           `json:"type" example:"order.paid"`
	Data PaymentEventData `json:"data"`
}

type PaymentEventData struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

type SplitQuote struct {
	Amount       int64   `json:"amount"`
	Courier      int64   `json:"courier"`
	Organizer    int64   `json:"organizer"`
	Platform     int64   `json:"platform"`
	CourierPct   float64 `json:"courierPct"`
	OrganizerPct float64 `json:"organizerPct"`
	PlatformPct  float64 `json:"platformPct"`
}

func splitQuoteFrom(amount int64, split services.Split) SplitQuote {
	return SplitQuote{
		Amount:       amount,
		Courier:      split.Courier,
		Organizer:    split.Organizer,
		Platform:     split.Platform,
		CourierPct:   split.CourierPct.Float(),
		OrganizerPct: split.OrganizerPct.Float(),
		PlatformPct:  split.PlatformPct.Float(),
	}
}
