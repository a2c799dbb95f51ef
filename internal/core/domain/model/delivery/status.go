package delivery

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the primary lifecycle state of a delivery.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InTransit ──> Completed
//	   │           │            │             │
//	   └───────────┴────────────┴─────────────┴──────> Cancelled
//
// Accepted and InTransit may additionally carry the payment-wait flag held by
// Delivery; reverting from payment-wait returns the delivery to Pending.
type Status int

const (
	Unknown Status = iota
	Pending
	Accepted
	PickedUp
	InTransit
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// HasCourier reports whether a delivery in this status must reference a courier.
func (s Status) HasCourier() bool {
	return s == Accepted || s == PickedUp || s == InTransit || s == Completed
}

// ValidateCanHaveCourier checks consistency between the status and the
// presence of a courier reference.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier != s.HasCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is inconsistent with courier assigned = %t", s, courier),
		)
	}
	return nil
}

func (s Status) Accept() (Status, error) {
	return s.advance("accept", Pending, Accepted)
}

func (s Status) PickUp() (Status, error) {
	return s.advance("confirm pickup", Accepted, PickedUp)
}

func (s Status) StartTransit() (Status, error) {
	return s.advance("start transit", PickedUp, InTransit)
}

func (s Status) Complete() (Status, error) {
	return s.advance("complete", InTransit, Completed)
}

// Cancel is allowed from every non-terminal status.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewAlreadyTerminalError("cancel", s.String())
	}
	return Cancelled, nil
}

func (s Status) advance(operation string, from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidStateError(operation, s.String())
	}
	return to, nil
}
