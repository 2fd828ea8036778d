package delivery_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAddress(t *testing.T) kernel.Address {
	t.Helper()

	address, err := kernel.NewAddress("12 Main St", "Springfield")
	require.NoError(t, err)
	return address
}

func TestNewDelivery(t *testing.T) {
	t.Run("should create pending delivery", func(t *testing.T) {
		id := kernel.NewUUID()

		del, err := delivery.NewDelivery(id, mustAddress(t), "dhl")

		require.NoError(t, err)
		require.NoError(t, del.Validate())
		assert.True(t, del.ID().IsEqual(id))
		assert.Equal(t, "dhl", del.Courier())
		assert.Equal(t, delivery.Pending, del.Status())
		assert.Empty(t, del.TrackingNumber())
	})

	t.Run("should fail with empty courier", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "")

		require.Error(t, err)
	})

	t.Run("should fail with invalid address", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), kernel.Address{}, "dhl")

		require.Error(t, err)
	})
}

func TestDeliveryShip(t *testing.T) {
	t.Run("pending delivery ships with tracking number", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")

		require.NoError(t, del.Ship("TRK-1"))
		assert.Equal(t, delivery.Shipped, del.Status())
		assert.Equal(t, "TRK-1", del.TrackingNumber())
	})

	t.Run("should require tracking number", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")

		require.ErrorIs(t, del.Ship(""), delivery.ErrTrackingNumberIsRequired)
		assert.Equal(t, delivery.Pending, del.Status())
	})

	t.Run("shipped delivery cannot ship twice", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")
		require.NoError(t, del.Ship("TRK-1"))

		require.Error(t, del.Ship("TRK-2"))
		assert.Equal(t, "TRK-1", del.TrackingNumber())
	})
}

func TestDeliveryTransitions(t *testing.T) {
	t.Run("shipped moves in transit then delivers", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")
		require.NoError(t, del.Ship("TRK-1"))

		require.NoError(t, del.MarkInTransit())
		assert.Equal(t, delivery.InTransit, del.Status())

		require.NoError(t, del.MarkDelivered())
		assert.Equal(t, delivery.Delivered, del.Status())
	})

	t.Run("shipped can deliver without transit report", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")
		require.NoError(t, del.Ship("TRK-1"))

		require.NoError(t, del.MarkDelivered())
		assert.Equal(t, delivery.Delivered, del.Status())
	})

	t.Run("in transit parcel can come back", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")
		require.NoError(t, del.Ship("TRK-1"))
		require.NoError(t, del.MarkInTransit())

		require.NoError(t, del.MarkReturned())
		assert.Equal(t, delivery.Returned, del.Status())
	})

	t.Run("pending delivery cannot move", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")

		require.Error(t, del.MarkInTransit())
		require.Error(t, del.MarkDelivered())
		require.Error(t, del.MarkReturned())
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		del, _ := delivery.NewDelivery(kernel.NewUUID(), mustAddress(t), "dhl")
		require.NoError(t, del.Ship("TRK-1"))
		require.NoError(t, del.MarkDelivered())

		require.Error(t, del.MarkInTransit())
		require.Error(t, del.MarkReturned())
	})
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("round trip preserves state", func(t *testing.T) {
		del, err := delivery.RestoreDelivery(
			kernel.NewUUID(), mustAddress(t), "dhl", delivery.InTransit, "TRK-1",
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.InTransit, del.Status())
		assert.Equal(t, "TRK-1", del.TrackingNumber())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), mustAddress(t), "dhl", delivery.Unknown, "",
		)

		require.Error(t, err)
	})
}
