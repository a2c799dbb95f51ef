package delivery

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRouteIsNotConstructed = errs.NewValueIsRequiredError("route must be created via NewRoute")

// Route is the pickup and dropoff pair of a delivery.
type Route struct {
	origin             kernel.Location
	originAddress      string
	destination        kernel.Location
	destinationAddress string
	guard              guard.ConstructorGuard
}

func NewRoute(
	origin kernel.Location, originAddress string,
	destination kernel.Location, destinationAddress string,
) (Route, error) {
	r := Route{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setOrigin(origin, originAddress),
		r.setDestination(destination, destinationAddress),
	); err != nil {
		return Route{}, err
	}
	return r, nil
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r Route) Origin() kernel.Location      { return r.origin }
func (r Route) OriginAddress() string        { return r.originAddress }
func (r Route) Destination() kernel.Location { return r.destination }
func (r Route) DestinationAddress() string   { return r.destinationAddress }

// DistanceKm is the straight-line Haversine distance from origin to destination.
func (r Route) DistanceKm() (float64, error) {
	return r.origin.DistanceKm(r.destination)
}

func (r *Route) setOrigin(loc kernel.Location, address string) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("originAddress")
	}
	r.origin = loc
	r.originAddress = strings.TrimSpace(address)
	return nil
}

func (r *Route) setDestination(loc kernel.Location, address string) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("destinationAddress")
	}
	r.destination = loc
	r.destinationAddress = strings.TrimSpace(address)
	return nil
}
