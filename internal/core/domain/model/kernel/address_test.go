package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should create valid address", func(t *testing.T) {
		a, err := kernel.NewAddress("12 Main St", "Springfield")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "12 Main St", a.Street())
		assert.Equal(t, "Springfield", a.City())
		assert.Equal(t, "12 Main St, Springfield", a.String())
	})

	t.Run("should fail with empty street", func(t *testing.T) {
		_, err := kernel.NewAddress("", "Springfield")

		require.Error(t, err)
	})

	t.Run("should fail with empty city", func(t *testing.T) {
		_, err := kernel.NewAddress("12 Main St", "")

		require.Error(t, err)
	})
}

func TestAddressIsEqual(t *testing.T) {
	a, _ := kernel.NewAddress("12 Main St", "Springfield")
	b, _ := kernel.NewAddress("12 Main St", "Springfield")
	c, _ := kernel.NewAddress("13 Main St", "Springfield")

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestAddressValidate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var a kernel.Address

		require.Error(t, a.Validate())
	})
}
