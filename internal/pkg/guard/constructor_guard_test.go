package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("delivery must be created via NewDelivery")

		assert.Equal(t, expected, g.Validate(expected))
	})

	t.Run("zero_value_falls_back_to_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type fee struct {
		cents int64
		guard guard.ConstructorGuard
	}
	errFeeNotConstructed := errors.New("fee must be created via newFee")

	newFee := func(cents int64) (fee, error) {
		if cents < 0 {
			return fee{}, errors.New("fee cannot be negative")
		}
		return fee{cents: cents, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		f, err := newFee(250)
		require.NoError(t, err)
		require.NoError(t, f.guard.Validate(errFeeNotConstructed))
	})

	t.Run("copied_by_value", func(t *testing.T) {
		f, err := newFee(250)
		require.NoError(t, err)
		fCopy := f
		require.NoError(t, fCopy.guard.Validate(errFeeNotConstructed))
	})

	t.Run("zero_value", func(t *testing.T) {
		var f fee
		assert.Equal(t, errFeeNotConstructed, f.guard.Validate(errFeeNotConstructed))
	})
}
