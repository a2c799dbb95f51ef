package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryActionCommand(t *testing.T) {
	deliveryID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewDeliveryActionCommand(deliveryID, courierID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, deliveryID, cmd.DeliveryID())
	assert.Equal(t, courierID, cmd.CourierID())
}

func TestNewDeliveryActionCommand_RequiresBothIDs(t *testing.T) {
	_, err := commands.NewDeliveryActionCommand(kernel.UUID{}, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewDeliveryActionCommand(kernel.NewUUID(), kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestDeliveryActionCommand_Validate_ZeroValue(t *testing.T) {
	require.ErrorIs(t, commands.DeliveryActionCommand{}.Validate(), commands.ErrDeliveryActionCommandIsNotConstructed)
}

func newActionCommand(t *testing.T, deliveryID, courierID kernel.UUID) commands.DeliveryActionCommand {
	t.Helper()
	cmd, err := commands.NewDeliveryActionCommand(deliveryID, courierID)
	require.NoError(t, err)
	return cmd
}
