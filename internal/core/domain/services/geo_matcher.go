package services

import (
	"cmp"
	"slices"

	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	// DefaultSearchRadiusKm is the first radius tried around a pickup point.
	DefaultSearchRadiusKm = 5.0
	// ExtendedSearchRadiusKm is tried once when the default radius finds nobody.
	ExtendedSearchRadiusKm = 10.0
)

// IDSet restricts a search to a set of courier ids. A nil IDSet means no
// restriction; an empty non-nil IDSet matches nobody.
type IDSet map[kernel.UUID]struct{}

func NewIDSet(ids ...kernel.UUID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) allows(id kernel.UUID) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// Candidate is a courier matched by GeoMatcher together with its distance to the search center.
type Candidate struct {
	Courier    *courier.Courier
	DistanceKm float64
}

// GeoMatcher finds available couriers around a point.
//
// Example usage:
//
//	matcher := services.NewGeoMatcher()
//	candidates, err := matcher.FindWithinRadii(pickup, pool, tierIDs,
//	    services.DefaultSearchRadiusKm, services.ExtendedSearchRadiusKm)
//	if err != nil {
//	    return err
//	}
//	for _, c := range candidates {
//	    // closest first
//	}
type GeoMatcher struct{}

func NewGeoMatcher() GeoMatcher {
	return GeoMatcher{}
}

// DistanceKm is the Haversine great-circle distance between two points.
func (m GeoMatcher) DistanceKm(a, b kernel.Location) (float64, error) {
	return a.DistanceKm(b)
}

// FindAvailable returns the AVAILABLE couriers allowed by allowed whose distance
// to center is at most radiusKm, closest first. Ties are broken by courier id.
func (m GeoMatcher) FindAvailable(
	center kernel.Location,
	radiusKm float64,
	couriers []*courier.Courier,
	allowed IDSet,
) ([]Candidate, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusKm < 0 {
		return nil, errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, "+inf")
	}

	candidates := make([]Candidate, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsAvailable() || !allowed.allows(c.ID()) {
			continue
		}

		distance, err := center.DistanceKm(c.Location())
		if err != nil {
			return nil, err
		}

		if distance <= radiusKm {
			candidates = append(candidates, Candidate{Courier: c, DistanceKm: distance})
		}
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if byDistance := cmp.Compare(a.DistanceKm, b.DistanceKm); byDistance != 0 {
			return byDistance
		}
		return a.Courier.ID().Compare(b.Courier.ID())
	})

	return candidates, nil
}

// FindWithinRadii tries each radius in order and returns the first non-empty result.
func (m GeoMatcher) FindWithinRadii(
	center kernel.Location,
	couriers []*courier.Courier,
	allowed IDSet,
	radiiKm ...float64,
) ([]Candidate, error) {
	for _, radius := range radiiKm {
		candidates, err := m.FindAvailable(center, radius, couriers, allowed)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
	}
	return nil, nil
}
