package courier

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Availability is the courier's dispatch status.
type Availability int

const (
	UnknownAvailability Availability = iota
	Available
	OnDelivery
	Offline
	Suspended
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		UnknownAvailability: "UNKNOWN",
		Available:           "AVAILABLE",
		OnDelivery:          "ON_DELIVERY",
		Offline:             "OFFLINE",
		Suspended:           "SUSPENDED",
	}
}

func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "UNKNOWN"
}

func ParseAvailability(s string) (Availability, error) {
	for a, str := range getAvailabilityStrings() {
		if str == s && a != UnknownAvailability {
			return a, nil
		}
	}
	return UnknownAvailability, errs.NewValueIsInvalidErrorWithCause(
		"availability", fmt.Errorf("%q is not a valid availability", s))
}

func (a Availability) Validate() error {
	if a < Available || a > Suspended {
		return errs.NewValueIsInvalidErrorWithCause("availability", fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// CanTakeAssignment reports whether a courier in this state may be assigned a delivery.
// Couriers already on a delivery may stack another one.
func (a Availability) CanTakeAssignment() bool {
	return a == Available || a == OnDelivery
}
