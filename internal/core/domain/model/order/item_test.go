package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	price, _ := kernel.NewMoney(250, "USD")

	t.Run("should create valid item", func(t *testing.T) {
		productID := kernel.NewUUID()

		item, err := order.NewItem(productID, 3, price)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, int64(250), item.UnitPrice().Amount())
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, price)

		require.Error(t, err)
	})

	t.Run("should fail with invalid unit price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 1, kernel.Money{})

		require.Error(t, err)
	})
}

func TestItemSubtotal(t *testing.T) {
	t.Run("subtotal is unit price times quantity", func(t *testing.T) {
		price, _ := kernel.NewMoney(250, "USD")
		item, _ := order.NewItem(kernel.NewUUID(), 4, price)

		subtotal, err := item.Subtotal()

		require.NoError(t, err)
		assert.Equal(t, int64(1000), subtotal.Amount())
		assert.Equal(t, "USD", subtotal.Currency())
	})

	t.Run("zero-value item cannot compute subtotal", func(t *testing.T) {
		var item order.Item

		_, err := item.Subtotal()

		require.Error(t, err)
	})
}
