package zone_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/zone"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpecialZone(t *testing.T) {
	z, err := zone.NewSpecialZone(kernel.NewUUID(), " Centro ", kernel.MustNewLocation(-23.55, -46.63),
		zone.DefaultRadiusMeters, zone.TypeDanger, true)

	require.NoError(t, err)
	require.NoError(t, z.Validate())
	assert.Equal(t, "Centro", z.Name())
	assert.InDelta(t, 300.0, z.RadiusMeters(), 1e-9)

	_, err = zone.NewSpecialZone(kernel.NewUUID(), "bad", kernel.MustNewLocation(0, 0), 0, zone.TypeDanger, true)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = zone.NewSpecialZone(kernel.NewUUID(), "bad", kernel.MustNewLocation(0, 0), 100, zone.Type("QUIET"), true)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseType(t *testing.T) {
	typ, err := zone.ParseType("high_income")
	require.NoError(t, err)
	assert.Equal(t, zone.TypeHighIncome, typ)
}
