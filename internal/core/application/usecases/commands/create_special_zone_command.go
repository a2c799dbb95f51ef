package commands

import (
	"errors"
	"math"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/zone"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateSpecialZoneCommandIsNotConstructed = errors.New(
	"CreateSpecialZoneCommand must be created via NewCreateSpecialZoneCommand constructor",
)

// CreateSpecialZoneCommand registers an active surcharge zone. A zero radius
// selects zone.DefaultRadiusMeters.
type CreateSpecialZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID       kernel.UUID
	name         string
	center       kernel.Location
	radiusMeters float64
	zoneType     zone.Type

	guard guard.ConstructorGuard
}

func NewCreateSpecialZoneCommand(
	name string,
	center kernel.Location,
	radiusMeters float64,
	zoneType zone.Type,
) (CreateSpecialZoneCommand, error) {
	if radiusMeters == 0 {
		radiusMeters = zone.DefaultRadiusMeters
	}

	var nameErr, radiusErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if math.IsNaN(radiusMeters) || radiusMeters < 0 {
		radiusErr = errs.NewValueIsOutOfRangeError("radiusMeters", radiusMeters, "0 (exclusive)", "+inf")
	}

	if err := errors.Join(nameErr, center.Validate(), radiusErr, zoneType.Validate()); err != nil {
		return CreateSpecialZoneCommand{}, err
	}

	return CreateSpecialZoneCommand{
		zoneID:       kernel.NewUUID(),
		name:         strings.TrimSpace(name),
		center:       center,
		radiusMeters: radiusMeters,
		zoneType:     zoneType,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateSpecialZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateSpecialZoneCommandIsNotConstructed)
}

func (c CreateSpecialZoneCommand) ZoneID() kernel.UUID     { return c.zoneID }
func (c CreateSpecialZoneCommand) Name() string            { return c.name }
func (c CreateSpecialZoneCommand) Center() kernel.Location { return c.center }
func (c CreateSpecialZoneCommand) RadiusMeters() float64   { return c.radiusMeters }
func (c CreateSpecialZoneCommand) Type() zone.Type         { return c.zoneType }
