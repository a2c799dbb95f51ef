package queries

import (
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const deliveryViewColumns = `
	id,
	client_id,
	organizer_id,
	courier_id,
	type,
	vehicle_type,
	status,
	awaiting_payment,
	payment_completed,
	origin_latitude,
	origin_longitude,
	origin_address,
	destination_latitude,
	destination_longitude,
	destination_address,
	total_amount,
	shipping_fee,
	distance_km,
	cancellation_reason,
	created_at,
	accepted_at,
	picked_up_at,
	in_transit_at,
	completed_at,
	cancelled_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeliveryView(row rowScanner) (DeliveryView, error) {
	var (
		view                     DeliveryView
		id, clientID             uuid.UUID
		organizerID, courierID   uuid.NullUUID
		originLat, originLng     float64
		destLat, destLng         float64
		cancellationReason       sql.NullString
		acceptedAt, pickedUpAt   sql.NullTime
		inTransitAt, completedAt sql.NullTime
		cancelledAt              sql.NullTime
	)

	if err := row.Scan(
		&id,
		&clientID,
		&organizerID,
		&courierID,
		&view.Type,
		&view.VehicleType,
		&view.Status,
		&view.AwaitingPayment,
		&view.PaymentCompleted,
		&originLat,
		&originLng,
		&view.OriginAddress,
		&destLat,
		&destLng,
		&view.DestinationAddress,
		&view.TotalAmount,
		&view.ShippingFee,
		&view.DistanceKm,
		&cancellationReason,
		&view.CreatedAt,
		&acceptedAt,
		&pickedUpAt,
		&inTransitAt,
		&completedAt,
		&cancelledAt,
	); err != nil {
		return DeliveryView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return DeliveryView{}, err
	}
	if view.ClientID, err = kernel.UUIDFromGoogle(clientID); err != nil {
		return DeliveryView{}, err
	}
	if view.OrganizerID, err = nullableID(organizerID); err != nil {
		return DeliveryView{}, err
	}
	if view.CourierID, err = nullableID(courierID); err != nil {
		return DeliveryView{}, err
	}
	if view.Origin, err = kernel.NewLocation(originLat, originLng); err != nil {
		return DeliveryView{}, err
	}
	if view.Destination, err = kernel.NewLocation(destLat, destLng); err != nil {
		return DeliveryView{}, err
	}

	view.CancellationReason = cancellationReason.String
	view.CreatedAt = view.CreatedAt.UTC()
	view.AcceptedAt = nullableTime(acceptedAt)
	view.PickedUpAt = nullableTime(pickedUpAt)
	view.InTransitAt = nullableTime(inTransitAt)
	view.CompletedAt = nullableTime(completedAt)
	view.CancelledAt = nullableTime(cancelledAt)

	return view, nil
}

func nullableID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(raw.UUID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func nullableTime(raw sql.NullTime) *time.Time {
	if !raw.Valid {
		return nil
	}
	t := raw.Time.UTC()
	return &t
}
