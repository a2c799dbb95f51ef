package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	kmPerDegreeLatitude = 111.0
)

var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is an immutable WGS84 coordinate pair in decimal degrees.
//
// Example:
//
//	pickup, err := kernel.NewLocation(-23.5505, -46.6333)
//	if err != nil {
//	    return err
//	}
//	km, err := pickup.DistanceKm(dropoff)
type Location struct { //nolint:recvcheck // setters use pointer receivers during construction
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation validates latitude in [-90, 90] and longitude in [-180, 180].
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation panics on invalid input. Intended for tests and static fixtures.
func MustNewLocation(latitude, longitude float64) Location {
	loc, err := NewLocation(latitude, longitude)
	if err != nil {
		panic(err)
	}
	return loc
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.latitude, l.longitude)
}

func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle distance to other using the Haversine
// formula with EarthRadiusKm. The result is symmetric and zero for identical points.
//
// Example:
//
//	a, _ := kernel.NewLocation(0, 0)
//	b, _ := kernel.NewLocation(0, 1)
//	km, _ := a.DistanceKm(b) // ~111.19
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return haversineKm(l.latitude, l.longitude, other.latitude, other.longitude), nil
}

// DistanceMeters is DistanceKm scaled to meters.
func (l Location) DistanceMeters(other Location) (float64, error) {
	km, err := l.DistanceKm(other)
	if err != nil {
		return 0, err
	}
	return km * 1000, nil
}

// BoundingBox is a latitude/longitude rectangle enclosing a search circle.
// It over-approximates the circle, so callers still filter by exact distance.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// BoundingBox returns the rectangle enclosing every point within radiusKm of l.
func (l Location) BoundingBox(radiusKm float64) (BoundingBox, error) {
	if err := l.Validate(); err != nil {
		return BoundingBox{}, err
	}
	if radiusKm < 0 {
		return BoundingBox{}, errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, math.Inf(1))
	}

	latDelta := radiusKm / kmPerDegreeLatitude
	lngDelta := MaxLongitude
	if cos := math.Cos(degreesToRadians(l.latitude)); cos > 1e-9 {
		lngDelta = math.Min(radiusKm/(kmPerDegreeLatitude*cos), MaxLongitude)
	}

	box := BoundingBox{
		MinLatitude:  math.Max(l.latitude-latDelta, MinLatitude),
		MaxLatitude:  math.Min(l.latitude+latDelta, MaxLatitude),
		MinLongitude: l.longitude - lngDelta,
		MaxLongitude: l.longitude + lngDelta,
	}

	// A circle that reaches a pole or crosses the antimeridian is not a single
	// longitude range; take the whole band instead.
	touchesPole := box.MinLatitude <= MinLatitude || box.MaxLatitude >= MaxLatitude
	if touchesPole || box.MinLongitude < MinLongitude || box.MaxLongitude > MaxLongitude {
		box.MinLongitude = MinLongitude
		box.MaxLongitude = MaxLongitude
	}
	return box, nil
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	l.longitude = longitude
	return nil
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	// clamp guards against rounding pushing a past 1 for antipodal points
	a = math.Min(1, math.Max(0, a))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
