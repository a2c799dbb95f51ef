package ports

import (
	"context"

	"marketplace/internal/core/domain/model/zone"
)

type SpecialZoneRepository interface {
	Add(ctx context.Context, zone *zone.SpecialZone) error

	GetActive(ctx context.Context) ([]*zone.SpecialZone, error)
}
