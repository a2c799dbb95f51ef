package contract_test

import (
	"testing"

	"marketplace/internal/core/domain/model/contract"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientContract(t *testing.T) {
	c, err := contract.NewClientContract(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), true, contract.StatusActive)

	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.True(t, c.IsPrimary())
	assert.True(t, c.IsActive())

	_, err = contract.NewClientContract(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), false, contract.Status("PAUSED"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestClientContract_SuspendedIsNotActive(t *testing.T) {
	c, err := contract.NewClientContract(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), false, contract.StatusSuspended)
	require.NoError(t, err)
	assert.False(t, c.IsActive())
}

func TestOrganizationIDs_Deduplicates(t *testing.T) {
	client := kernel.NewUUID()
	orgA := kernel.NewUUID()
	orgB := kernel.NewUUID()

	a1, err := contract.NewClientContract(kernel.NewUUID(), client, orgA, false, contract.StatusActive)
	require.NoError(t, err)
	a2, err := contract.NewClientContract(kernel.NewUUID(), client, orgA, false, contract.StatusActive)
	require.NoError(t, err)
	b, err := contract.NewClientContract(kernel.NewUUID(), client, orgB, false, contract.StatusActive)
	require.NoError(t, err)

	assert.Equal(t, []kernel.UUID{orgA, orgB}, contract.OrganizationIDs([]*contract.ClientContract{a1, a2, b}))
}
