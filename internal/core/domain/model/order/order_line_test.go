package order_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderLine(t *testing.T) {
	validID := kernel.NewUUID()
	validOrderID := kernel.NewUUID()
	validProductID := kernel.NewUUID()

	t.Run("should create valid order line with all valid parameters", func(t *testing.T) {
		line, err := order.NewOrderLine(validID, validOrderID, validProductID, 10)

		require.NoError(t, err)
		assert.NotNil(t, line)
		require.NoError(t, line.Validate())
		assert.True(t, line.ID().IsEqual(validID))
		assert.True(t, line.OrderID().IsEqual(validOrderID))
		assert.True(t, line.ProductID().IsEqual(validProductID))
		assert.Equal(t, 10, line.OrderedQuantity())
	})

	t.Run("should fail with invalid line ID", func(t *testing.T) {
		var invalidID kernel.UUID

		line, err := order.NewOrderLine(invalidID, validOrderID, validProductID, 10)

		require.Error(t, err)
		assert.Nil(t, line)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with invalid order ID", func(t *testing.T) {
		var invalidOrderID kernel.UUID

		line, err := order.NewOrderLine(validID, invalidOrderID, validProductID, 10)

		require.Error(t, err)
		assert.Nil(t, line)
	})

	t.Run("should fail with zero ordered quantity", func(t *testing.T) {
		line, err := order.NewOrderLine(validID, validOrderID, validProductID, 0)

		require.Error(t, err)
		assert.Nil(t, line)
		assert.Contains(t, err.Error(), "orderedQuantity is invalid")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with negative ordered quantity", func(t *testing.T) {
		line, err := order.NewOrderLine(validID, validOrderID, validProductID, -3)

		require.Error(t, err)
		assert.Nil(t, line)
		assert.Contains(t, err.Error(), "-3 is not greater than 0")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		line, err := order.NewOrderLine(invalidID, validOrderID, validProductID, -1)

		require.Error(t, err)
		assert.Nil(t, line)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "orderedQuantity is invalid")
	})
}

func TestRestoreOrderLine(t *testing.T) {
	t.Run("should restore a valid order line", func(t *testing.T) {
		id := kernel.NewUUID()
		line, err := order.RestoreOrderLine(id, kernel.NewUUID(), kernel.NewUUID(), 7)

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.Equal(t, 7, line.OrderedQuantity())
	})

	t.Run("should reject corrupted quantities", func(t *testing.T) {
		line, err := order.RestoreOrderLine(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), -5)

		require.Error(t, err)
		assert.Nil(t, line)
	})
}

func TestOrderLine_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var line order.OrderLine

		err := line.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrOrderLineIsNotConstructed)
	})

	t.Run("nil receiver fails validation", func(t *testing.T) {
		var line *order.OrderLine

		require.ErrorIs(t, line.Validate(), order.ErrOrderLineIsNotConstructed)
	})
}

func TestOrderLine_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	lineA, _ := order.NewOrderLine(id, kernel.NewUUID(), kernel.NewUUID(), 5)
	lineB, _ := order.NewOrderLine(id, kernel.NewUUID(), kernel.NewUUID(), 9)
	lineC, _ := order.NewOrderLine(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 5)

	assert.True(t, lineA.IsEqual(lineB))
	assert.False(t, lineA.IsEqual(lineC))
	assert.False(t, lineA.IsEqual(nil))
}
