package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/pkg/errs"
)

var allStatuses = []delivery.Status{
	delivery.Pending,
	delivery.Accepted,
	delivery.PickedUp,
	delivery.InTransit,
	delivery.Completed,
	delivery.Cancelled,
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PENDING", delivery.Pending.String())
	assert.Equal(t, "PICKED_UP", delivery.PickedUp.String())
	assert.Equal(t, "IN_TRANSIT", delivery.InTransit.String())
	assert.Equal(t, "UNKNOWN", delivery.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		parsed, err := delivery.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := delivery.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses {
		require.NoError(t, s.Validate())
	}
	require.Error(t, delivery.Unknown.Validate())
	require.Error(t, delivery.Status(99).Validate())
}

// Every (status, transition) pair outside the canonical chain must be rejected.
func TestStatus_OnlyCanonicalTransitionsAreReachable(t *testing.T) {
	type transition struct {
		name string
		fn   func(delivery.Status) (delivery.Status, error)
		from delivery.Status
		to   delivery.Status
	}
	transitions := []transition{
		{"accept", delivery.Status.Accept, delivery.Pending, delivery.Accepted},
		{"pickup", delivery.Status.PickUp, delivery.Accepted, delivery.PickedUp},
		{"transit", delivery.Status.StartTransit, delivery.PickedUp, delivery.InTransit},
		{"complete", delivery.Status.Complete, delivery.InTransit, delivery.Completed},
	}

	for _, tr := range transitions {
		for _, s := range allStatuses {
			t.Run(tr.name+"_from_"+s.String(), func(t *testing.T) {
				next, err := tr.fn(s)
				if s == tr.from {
					require.NoError(t, err)
					assert.Equal(t, tr.to, next)
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidState)
				assert.Equal(t, delivery.Unknown, next)
			})
		}
	}
}

func TestStatus_Cancel(t *testing.T) {
	for _, s := range allStatuses {
		t.Run(s.String(), func(t *testing.T) {
			next, err := s.Cancel()
			if s.IsTerminal() {
				require.ErrorIs(t, err, errs.ErrAlreadyTerminal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, delivery.Cancelled, next)
		})
	}
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	tests := []struct {
		status  delivery.Status
		courier bool
		wantErr bool
	}{
		{delivery.Pending, false, false},
		{delivery.Pending, true, true},
		{delivery.Accepted, true, false},
		{delivery.Accepted, false, true},
		{delivery.Completed, true, false},
		{delivery.Cancelled, false, false},
		{delivery.Cancelled, true, true},
	}

	for _, tt := range tests {
		err := tt.status.ValidateCanHaveCourier(tt.courier)
		if tt.wantErr {
			assert.Error(t, err, "%s courier=%t", tt.status, tt.courier)
		} else {
			assert.NoError(t, err, "%s courier=%t", tt.status, tt.courier)
		}
	}
}
