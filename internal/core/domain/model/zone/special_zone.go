// Package zone models geofenced special zones that trigger pricing surcharges.
package zone

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const DefaultRadiusMeters = 300.0

var ErrSpecialZoneIsNotConstructed = errors.New("SpecialZone must be created via NewSpecialZone")

type Type string

const (
	TypeDanger     Type = "DANGER"
	TypeHighIncome Type = "HIGH_INCOME"
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
	case TypeDanger, TypeHighIncome:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("zoneType", fmt.Errorf("%q is not a valid zone type", string(t)))
	}
}

// SpecialZone is a circle of RadiusMeters around Center.
type SpecialZone struct {
	id           kernel.UUID
	name         string
	center       kernel.Location
	radiusMeters float64
	zoneType     Type
	active       bool
	guard        guard.ConstructorGuard
}

func NewSpecialZone(
	id kernel.UUID, name string, center kernel.Location, radiusMeters float64, zoneType Type, active bool,
) (*SpecialZone, error) {
	z := &SpecialZone{
		id:           id,
		name:         strings.TrimSpace(name),
		center:       center,
		radiusMeters: radiusMeters,
		zoneType:     zoneType,
		active:       active,
		guard:        guard.NewConstructorGuard(),
	}

	var radiusErr error
	if math.IsNaN(radiusMeters) || radiusMeters <= 0 {
		radiusErr = errs.NewValueIsOutOfRangeError("radiusMeters", radiusMeters, "0 (exclusive)", "+inf")
	}

	if err := errors.Join(id.Validate(), center.Validate(), zoneType.Validate(), radiusErr); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *SpecialZone) Validate() error {
	if z == nil {
		return ErrSpecialZoneIsNotConstructed
	}
	return z.guard.Validate(ErrSpecialZoneIsNotConstructed)
}

func (z *SpecialZone) ID() kernel.UUID         { return z.id }
func (z *SpecialZone) Name() string            { return z.name }
func (z *SpecialZone) Center() kernel.Location { return z.center }
func (z *SpecialZone) RadiusMeters() float64   { return z.radiusMeters }
func (z *SpecialZone) Type() Type              { return z.zoneType }
func (z *SpecialZone) IsActive() bool          { return z.active }

// DistanceMeters is the Haversine distance from the zone center to point.
func (z *SpecialZone) DistanceMeters(point kernel.Location) (float64, error) {
	return z.center.DistanceMeters(point)
}
