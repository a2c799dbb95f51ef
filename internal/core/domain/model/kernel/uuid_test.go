package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsEqual(id2))
	assert.True(t, id1.IsEqual(id1))
}

func TestUUIDFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("nil uuid is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromGoogle(t *testing.T) {
	raw := uuid.New()

	id, err := kernel.UUIDFromGoogle(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.Google())

	_, err = kernel.UUIDFromGoogle(uuid.Nil)
	require.Error(t, err)
}

func TestUUID_Compare(t *testing.T) {
	low, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000001")
	require.NoError(t, err)
	high, err := kernel.UUIDFromString("ffffffff-0000-0000-0000-000000000000")
	require.NoError(t, err)

	assert.Negative(t, low.Compare(high))
	assert.Positive(t, high.Compare(low))
	assert.Zero(t, low.Compare(low))
}

func TestUUID_ZeroValue(t *testing.T) {
	var id kernel.UUID
	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_UsableAsMapKey(t *testing.T) {
	id := kernel.NewUUID()
	same, err := kernel.UUIDFromString(id.String())
	require.NoError(t, err)

	set := map[kernel.UUID]struct{}{id: {}}
	_, ok := set[same]
	assert.True(t, ok)
}
