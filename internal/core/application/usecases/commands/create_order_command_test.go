package commands_test

import (
	"testing"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	validItems := []commands.OrderItemInput{{MenuItemID: kernel.NewUUID(), Quantity: 2}}

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "cust-42", validItems, testDeliveryAddress(t), order.PaymentMethodOnline)
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "cust-42", cmd.CustomerID())
		assert.Len(t, cmd.Items(), 1)
	})

	t.Run("empty uuid is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, "cust-42", validItems, testDeliveryAddress(t), order.PaymentMethodOnline)
		require.Error(t, err)
	})

	t.Run("missing customer is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "", validItems, testDeliveryAddress(t), order.PaymentMethodOnline)
		require.Error(t, err)
	})

	t.Run("no items is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "cust-42", nil, testDeliveryAddress(t), order.PaymentMethodOnline)
		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		items := []commands.OrderItemInput{{MenuItemID: kernel.NewUUID(), Quantity: 0}}
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "cust-42", items, testDeliveryAddress(t), order.PaymentMethodOnline)
		require.Error(t, err)
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "cust-42", validItems, testDeliveryAddress(t), order.PaymentMethod("crypto"))
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		cmd := commands.CreateOrderCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
