package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/pkg/errs"
)

// Checkpoint is the lifecycle point at which payment must be settled.
type Checkpoint int

const (
	CheckpointAcceptance Checkpoint = iota + 1
	CheckpointTransitStart
)

func (c Checkpoint) String() string {
	switch c {
	case CheckpointAcceptance:
		return "ACCEPTANCE"
	case CheckpointTransitStart:
		return "TRANSIT_START"
	default:
		return "UNKNOWN"
	}
}

// status is the delivery status reached by passing the checkpoint.
func (c Checkpoint) status() delivery.Status {
	switch c {
	case CheckpointAcceptance:
		return delivery.Accepted
	case CheckpointTransitStart:
		return delivery.InTransit
	default:
		return delivery.Unknown
	}
}

// PaymentTimingPolicy maps a delivery type to its payment checkpoint: parcels
// are paid when a courier accepts, rides when the trip starts. It has no side effects.
type PaymentTimingPolicy struct{}

func NewPaymentTimingPolicy() PaymentTimingPolicy {
	return PaymentTimingPolicy{}
}

func (p PaymentTimingPolicy) CheckpointFor(t delivery.Type) (Checkpoint, error) {
	switch t {
	case delivery.TypeDelivery:
		return CheckpointAcceptance, nil
	case delivery.TypeRide:
		return CheckpointTransitStart, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("deliveryType", fmt.Errorf("no payment checkpoint for %q", t))
	}
}

// RequiresPaymentAt reports whether passing checkpoint must put d into payment-wait.
// Deliveries that are already settled never wait.
func (p PaymentTimingPolicy) RequiresPaymentAt(d *delivery.Delivery, checkpoint Checkpoint) bool {
	expected, err := p.CheckpointFor(d.Type())
	if err != nil {
		return false
	}
	return expected == checkpoint && !d.IsPaymentSettled()
}

// IsRevertible reports whether a lapsed payment may send d back to PENDING:
// d must be waiting for payment at the checkpoint of its own type.
func (p PaymentTimingPolicy) IsRevertible(d *delivery.Delivery) bool {
	if !d.IsAwaitingPayment() {
		return false
	}
	checkpoint, err := p.CheckpointFor(d.Type())
	if err != nil {
		return false
	}
	return d.Status() == checkpoint.status()
}
