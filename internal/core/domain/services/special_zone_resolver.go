package services

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/zone"
)

// SpecialZoneResolver picks the surcharge zone for a destination.
type SpecialZoneResolver struct{}

func NewSpecialZoneResolver() SpecialZoneResolver {
	return SpecialZoneResolver{}
}

// Resolve returns the active zone nearest to point among those whose own radius
// contains it, regardless of zone type. It returns nil when no zone qualifies.
func (r SpecialZoneResolver) Resolve(point kernel.Location, zones []*zone.SpecialZone) (*zone.SpecialZone, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	var (
		nearest     *zone.SpecialZone
		nearestDist float64
	)
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if !z.IsActive() {
			continue
		}

		dist, err := z.DistanceMeters(point)
		if err != nil {
			return nil, err
		}
		if dist > z.RadiusMeters() {
			continue
		}

		if nearest == nil || dist < nearestDist ||
			(dist == nearestDist && z.ID().Compare(nearest.ID()) < 0) {
			nearest = z
			nearestDist = dist
		}
	}

	return nearest, nil
}
