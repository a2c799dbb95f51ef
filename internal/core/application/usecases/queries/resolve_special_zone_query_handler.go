package queries

import (
	"context"

	"marketplace/internal/core/domain/model/zone"
	"marketplace/internal/core/domain/services"
)

// ActiveZoneReader loads the zones the resolver chooses from.
type ActiveZoneReader interface {
	GetActive(ctx context.Context) ([]*zone.SpecialZone, error)
}

// ResolveSpecialZoneQueryHandler applies services.SpecialZoneResolver to the
// currently active zones.
type ResolveSpecialZoneQueryHandler struct {
	zones    ActiveZoneReader
	resolver services.SpecialZoneResolver
}

func NewResolveSpecialZoneQueryHandler(
	zones ActiveZoneReader,
	resolver services.SpecialZoneResolver,
) ResolveSpecialZoneQueryHandler {
	return ResolveSpecialZoneQueryHandler{zones: zones, resolver: resolver}
}

// Handle reports found=false when no active zone contains the point.
func (h ResolveSpecialZoneQueryHandler) Handle(
	ctx context.Context,
	query ResolveSpecialZoneQuery,
) (view SpecialZoneView, found bool, err error) {
	if err = query.Validate(); err != nil {
		return SpecialZoneView{}, false, err
	}

	zones, err := h.zones.GetActive(ctx)
	if err != nil {
		return SpecialZoneView{}, false, err
	}

	match, err := h.resolver.Resolve(query.Point(), zones)
	if err != nil || match == nil {
		return SpecialZoneView{}, false, err
	}

	distance, err := match.DistanceMeters(query.Point())
	if err != nil {
		return SpecialZoneView{}, false, err
	}

	return SpecialZoneView{
		ID:             match.ID(),
		Name:           match.Name(),
		Type:           string(match.Type()),
		Center:         match.Center(),
		RadiusMeters:   match.RadiusMeters(),
		DistanceMeters: distance,
	}, true, nil
}
