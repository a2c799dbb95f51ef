package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrResolveSpecialZoneQueryIsNotConstructed = errors.New(
	"ResolveSpecialZoneQuery must be created via NewResolveSpecialZoneQuery constructor",
)

// ResolveSpecialZoneQuery asks which special zone, if any, applies to a point.
// Pricing calls it with a delivery destination to decide on a surcharge.
type ResolveSpecialZoneQuery struct {
	point kernel.Location
	guard guard.ConstructorGuard
}

func NewResolveSpecialZoneQuery(point kernel.Location) (ResolveSpecialZoneQuery, error) {
	if err := point.Validate(); err != nil {
		return ResolveSpecialZoneQuery{}, err
	}
	return ResolveSpecialZoneQuery{point: point, guard: guard.NewConstructorGuard()}, nil
}

func (q ResolveSpecialZoneQuery) Validate() error {
	return q.guard.Validate(ErrResolveSpecialZoneQueryIsNotConstructed)
}

func (q ResolveSpecialZoneQuery) Point() kernel.Location { return q.point }

// SpecialZoneView describes the zone that matched and how far its center is.
type SpecialZoneView struct {
	ID             kernel.UUID
	Name           string
	Type           string
	Center         kernel.Location
	RadiusMeters   float64
	DistanceMeters float64
}
