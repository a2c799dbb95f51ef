package delivery

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Type distinguishes parcel deliveries from passenger rides. It decides the
// payment checkpoint.
type Type string

const (
	TypeDelivery Type = "DELIVERY"
	TypeRide     Type = "RIDE"
)

func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	switch t {
	case TypeDelivery, TypeRide:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("deliveryType", fmt.Errorf("%q is not a valid delivery type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}

type VehicleType string

const (
	VehicleAny        VehicleType = "ANY"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleCar        VehicleType = "CAR"
)

// ParseVehicleType maps an empty value to VehicleAny.
func ParseVehicleType(s string) (VehicleType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return VehicleAny, nil
	}
	v := VehicleType(s)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

func (v VehicleType) Validate() error {
	switch v {
	case VehicleAny, VehicleMotorcycle, VehicleCar:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a valid vehicle type", string(v)))
	}
}

func (v VehicleType) String() string {
	return string(v)
}
