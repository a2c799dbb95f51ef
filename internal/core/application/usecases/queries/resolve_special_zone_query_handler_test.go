package queries_test

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/zone"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockActiveZoneReader struct{ mock.Mock }

func (m *MockActiveZoneReader) GetActive(ctx context.Context) ([]*zone.SpecialZone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*zone.SpecialZone), args.Error(1)
}

func newZone(t *testing.T, name string, center kernel.Location, radius float64, zoneType zone.Type) *zone.SpecialZone {
	t.Helper()
	z, err := zone.NewSpecialZone(kernel.NewUUID(), name, center, radius, zoneType, true)
	require.NoError(t, err)
	return z
}

func TestResolveSpecialZoneQueryHandler_Handle(t *testing.T) {
	center := kernel.MustNewLocation(-23.6100, -46.7200)
	inside := kernel.MustNewLocation(-23.6120, -46.7200)
	outside := kernel.MustNewLocation(-23.5505, -46.6333)

	danger := newZone(t, "Paraisópolis", center, 800, zone.TypeDanger)

	t.Run("point inside a zone", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockActiveZoneReader)
		reader.On("GetActive", ctx).Return([]*zone.SpecialZone{danger}, nil).Once()
		handler := queries.NewResolveSpecialZoneQueryHandler(reader, services.NewSpecialZoneResolver())
		query, err := queries.NewResolveSpecialZoneQuery(inside)
		require.NoError(t, err)

		view, found, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, danger.ID(), view.ID)
		assert.Equal(t, "DANGER", view.Type)
		assert.InDelta(t, 222, view.DistanceMeters, 2)
	})

	t.Run("point outside every zone", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockActiveZoneReader)
		reader.On("GetActive", ctx).Return([]*zone.SpecialZone{danger}, nil).Once()
		handler := queries.NewResolveSpecialZoneQueryHandler(reader, services.NewSpecialZoneResolver())
		query, err := queries.NewResolveSpecialZoneQuery(outside)
		require.NoError(t, err)

		_, found, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("reader failure", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockActiveZoneReader)
		reader.On("GetActive", ctx).Return(nil, errors.New("connection reset")).Once()
		handler := queries.NewResolveSpecialZoneQueryHandler(reader, services.NewSpecialZoneResolver())
		query, err := queries.NewResolveSpecialZoneQuery(inside)
		require.NoError(t, err)

		_, found, err := handler.Handle(ctx, query)

		require.EqualError(t, err, "connection reset")
		assert.False(t, found)
	})

	t.Run("unconstructed query", func(t *testing.T) {
		handler := queries.NewResolveSpecialZoneQueryHandler(new(MockActiveZoneReader), services.NewSpecialZoneResolver())

		_, _, err := handler.Handle(t.Context(), queries.ResolveSpecialZoneQuery{})

		require.ErrorIs(t, err, queries.ErrResolveSpecialZoneQueryIsNotConstructed)
	})
}
