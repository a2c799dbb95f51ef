package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrDeliveryIsNotConstructed = errors.New("delivery must be created via NewDelivery or RestoreDelivery")

const reasonAwaitingPayment = "awaiting payment confirmation"

// Delivery is the aggregate that owns the delivery lifecycle. Every status change
// goes through its methods; persistence adapters rebuild it with RestoreDelivery
// and compare Version on write.
type Delivery struct {
	id          kernel.UUID
	clientID    kernel.UUID
	organizerID *kernel.UUID
	courierID   *kernel.UUID

	route        Route
	deliveryType Type
	vehicleType  VehicleType

	status           Status
	awaitingPayment  bool
	paymentCompleted bool
	paymentCaptured  bool

	totalAmount        int64
	shippingFee        int64
	distanceKm         float64
	cancellationReason string

	createdAt   time.Time
	acceptedAt  *time.Time
	pickedUpAt  *time.Time
	inTransitAt *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	version int64
	guard   guard.ConstructorGuard
}

// NewDelivery creates a Pending delivery. Amounts are in minor currency units.
func NewDelivery(
	id, clientID kernel.UUID,
	organizerID *kernel.UUID,
	route Route,
	deliveryType Type,
	vehicleType VehicleType,
	totalAmount, shippingFee int64,
	now time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:    Pending,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setClientID(clientID),
		d.setOrganizerID(organizerID),
		d.setRoute(route),
		d.setType(deliveryType),
		d.setVehicleType(vehicleType),
		d.setAmounts(totalAmount, shippingFee),
	); err != nil {
		return nil, err
	}

	distance, err := route.DistanceKm()
	if err != nil {
		return nil, err
	}
	d.distanceKm = distance

	return d, nil
}

// Snapshot carries persisted state into RestoreDelivery.
type Snapshot struct {
	ID                 kernel.UUID
	ClientID           kernel.UUID
	OrganizerID        *kernel.UUID
	CourierID          *kernel.UUID
	Route              Route
	Type               Type
	VehicleType        VehicleType
	Status             Status
	AwaitingPayment    bool
	PaymentCompleted   bool
	PaymentCaptured    bool
	TotalAmount        int64
	ShippingFee        int64
	DistanceKm         float64
	CancellationReason string
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	PickedUpAt         *time.Time
	InTransitAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	Version            int64
}

func RestoreDelivery(s Snapshot) (*Delivery, error) {
	d := &Delivery{
		courierID:          s.CourierID,
		awaitingPayment:    s.AwaitingPayment,
		paymentCompleted:   s.PaymentCompleted,
		paymentCaptured:    s.PaymentCaptured,
		distanceKm:         s.DistanceKm,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		acceptedAt:         s.AcceptedAt,
		pickedUpAt:         s.PickedUpAt,
		inTransitAt:        s.InTransitAt,
		completedAt:        s.CompletedAt,
		cancelledAt:        s.CancelledAt,
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setClientID(s.ClientID),
		d.setOrganizerID(s.OrganizerID),
		d.setRoute(s.Route),
		d.setType(s.Type),
		d.setVehicleType(s.VehicleType),
		d.setAmounts(s.TotalAmount, s.ShippingFee),
		d.setStatus(s.Status, s.CourierID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID              { return d.id }
func (d *Delivery) ClientID() kernel.UUID        { return d.clientID }
func (d *Delivery) OrganizerID() *kernel.UUID    { return d.organizerID }
func (d *Delivery) CourierID() *kernel.UUID      { return d.courierID }
func (d *Delivery) Route() Route                 { return d.route }
func (d *Delivery) Type() Type                   { return d.deliveryType }
func (d *Delivery) VehicleType() VehicleType     { return d.vehicleType }
func (d *Delivery) Status() Status               { return d.status }
func (d *Delivery) IsAwaitingPayment() bool      { return d.awaitingPayment }
func (d *Delivery) PaymentCompleted() bool       { return d.paymentCompleted }
func (d *Delivery) PaymentCaptured() bool        { return d.paymentCaptured }
func (d *Delivery) TotalAmount() int64           { return d.totalAmount }
func (d *Delivery) ShippingFee() int64           { return d.shippingFee }
func (d *Delivery) DistanceKm() float64          { return d.distanceKm }
func (d *Delivery) CancellationReason() string   { return d.cancellationReason }
func (d *Delivery) CreatedAt() time.Time         { return d.createdAt }
func (d *Delivery) AcceptedAt() *time.Time       { return d.acceptedAt }
func (d *Delivery) PickedUpAt() *time.Time       { return d.pickedUpAt }
func (d *Delivery) InTransitAt() *time.Time      { return d.inTransitAt }
func (d *Delivery) CompletedAt() *time.Time      { return d.completedAt }
func (d *Delivery) CancelledAt() *time.Time      { return d.cancelledAt }
func (d *Delivery) Version() int64               { return d.version }
func (d *Delivery) IsEqual(other *Delivery) bool { return other != nil && d.id.IsEqual(other.id) }

// IsPaymentSettled reports whether the payment has been both completed and captured.
func (d *Delivery) IsPaymentSettled() bool {
	return d.paymentCompleted && d.paymentCaptured
}

// IsAssignedTo reports whether courierID is the courier currently attached.
func (d *Delivery) IsAssignedTo(courierID kernel.UUID) bool {
	return d.courierID != nil && d.courierID.IsEqual(courierID)
}

// Accept assigns the courier and moves Pending -> Accepted. When awaitPayment is
// set the delivery enters payment-wait and cannot be picked up until ConfirmPayment.
func (d *Delivery) Accept(courierID kernel.UUID, awaitPayment bool, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	next, err := d.status.Accept()
	if err != nil {
		return err
	}

	at := now.UTC()
	d.status = next
	d.courierID = &courierID
	d.acceptedAt = &at
	d.awaitingPayment = awaitPayment
	return nil
}

func (d *Delivery) ConfirmPickup(courierID kernel.UUID, now time.Time) error {
	next, err := d.status.PickUp()
	if err != nil {
		return err
	}
	if err = d.checkCourierMayProceed("confirm pickup", courierID); err != nil {
		return err
	}

	at := now.UTC()
	d.status = next
	d.pickedUpAt = &at
	return nil
}

// StartTransit moves PickedUp -> InTransit, entering payment-wait when awaitPayment is set.
func (d *Delivery) StartTransit(courierID kernel.UUID, awaitPayment bool, now time.Time) error {
	next, err := d.status.StartTransit()
	if err != nil {
		return err
	}
	if err = d.checkCourierMayProceed("start transit", courierID); err != nil {
		return err
	}

	at := now.UTC()
	d.status = next
	d.inTransitAt = &at
	d.awaitingPayment = awaitPayment
	return nil
}

func (d *Delivery) Complete(courierID kernel.UUID, now time.Time) error {
	next, err := d.status.Complete()
	if err != nil {
		return err
	}
	if err = d.checkCourierMayProceed("complete", courierID); err != nil {
		return err
	}

	at := now.UTC()
	d.status = next
	d.completedAt = &at
	return nil
}

// Cancel moves any non-terminal delivery to Cancelled and detaches the courier.
// It returns the courier that was assigned, if any.
func (d *Delivery) Cancel(reason string, now time.Time) (*kernel.UUID, error) {
	next, err := d.status.Cancel()
	if err != nil {
		return nil, err
	}

	previous := d.courierID
	at := now.UTC()
	d.status = next
	d.courierID = nil
	d.awaitingPayment = false
	d.cancelledAt = &at
	d.cancellationReason = strings.TrimSpace(reason)
	return previous, nil
}

// ConfirmPayment records a completed and captured payment and lifts payment-wait.
func (d *Delivery) ConfirmPayment() error {
	if d.status == Cancelled {
		return errs.NewAlreadyTerminalError("confirm payment", d.status.String())
	}

	d.paymentCompleted = true
	d.paymentCaptured = true
	d.awaitingPayment = false
	return nil
}

// RevertToPending undoes an acceptance whose payment lapsed. It only applies while
// the delivery is in payment-wait; otherwise it reports false and changes nothing.
// On success it returns the courier that was detached.
func (d *Delivery) RevertToPending() (*kernel.UUID, bool) {
	if !d.awaitingPayment || (d.status != Accepted && d.status != InTransit) {
		return nil, false
	}

	previous := d.courierID
	d.status = Pending
	d.courierID = nil
	d.acceptedAt = nil
	d.pickedUpAt = nil
	d.inTransitAt = nil
	d.awaitingPayment = false
	d.paymentCompleted = false
	d.paymentCaptured = false
	return previous, true
}

func (d *Delivery) checkCourierMayProceed(operation string, courierID kernel.UUID) error {
	if !d.IsAssignedTo(courierID) {
		return errs.NewInvalidStateErrorWithReason(operation, d.status.String(),
			fmt.Sprintf("courier %s is not assigned to this delivery", courierID))
	}
	if d.awaitingPayment {
		return errs.NewInvalidStateErrorWithReason(operation, d.status.String(), reasonAwaitingPayment)
	}
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientID", err)
	}
	d.clientID = id
	return nil
}

func (d *Delivery) setOrganizerID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("organizerID", err)
	}
	d.organizerID = id
	return nil
}

func (d *Delivery) setRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	d.route = route
	return nil
}

func (d *Delivery) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	d.deliveryType = t
	return nil
}

func (d *Delivery) setVehicleType(v VehicleType) error {
	if err := v.Validate(); err != nil {
		return err
	}
	d.vehicleType = v
	return nil
}

func (d *Delivery) setAmounts(totalAmount, shippingFee int64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%d is negative", totalAmount))
	}
	if shippingFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shippingFee", fmt.Errorf("%d is negative", shippingFee))
	}
	d.totalAmount = totalAmount
	d.shippingFee = shippingFee
	return nil
}

func (d *Delivery) setStatus(status Status, courierID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	d.status = status
	return nil
}
