package services_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLine(t *testing.T, orderID kernel.UUID, orderedQty int) *order.OrderLine {
	t.Helper()
	line, err := order.NewOrderLine(kernel.NewUUID(), orderID, kernel.NewUUID(), orderedQty)
	require.NoError(t, err)
	return line
}

func makeShipment(t *testing.T, orderID kernel.UUID, quantities map[kernel.UUID]int) *shipment.Shipment {
	t.Helper()
	allocations := make([]*shipment.Allocation, 0, len(quantities))
	for lineID, qty := range quantities {
		alloc, err := shipment.NewAllocation(lineID, qty)
		require.NoError(t, err)
		allocations = append(allocations, alloc)
	}
	s, err := shipment.RestoreShipment(kernel.NewUUID(), orderID, nil, "", 1, allocations)
	require.NoError(t, err)
	return s
}

func TestAllocationValidator_Validate(t *testing.T) {
	validator := services.NewAllocationValidator()
	orderID := kernel.NewUUID()

	t.Run("should accept fully allocated order", func(t *testing.T) {
		line := makeLine(t, orderID, 10)
		s1 := makeShipment(t, orderID, map[kernel.UUID]int{line.ID(): 4})
		s2 := makeShipment(t, orderID, map[kernel.UUID]int{line.ID(): 6})

		err := validator.Validate(
			[]*order.OrderLine{line},
			[]*shipment.Shipment{s1, s2},
		)

		require.NoError(t, err)
	})

	t.Run("should accept partially allocated order", func(t *testing.T) {
		line := makeLine(t, orderID, 10)
		s1 := makeShipment(t, orderID, map[kernel.UUID]int{line.ID(): 3})

		require.NoError(t, validator.Validate([]*order.OrderLine{line}, []*shipment.Shipment{s1}))
	})

	t.Run("should accept order with no shipments", func(t *testing.T) {
		line := makeLine(t, orderID, 10)

		require.NoError(t, validator.Validate([]*order.OrderLine{line}, nil))
	})

	t.Run("should reject over-allocation and name the line", func(t *testing.T) {
		line := makeLine(t, orderID, 10)
		s1 := makeShipment(t, orderID, map[kernel.UUID]int{line.ID(): 7})
		s2 := makeShipment(t, orderID, map[kernel.UUID]int{line.ID(): 6})

		err := validator.Validate(
			[]*order.OrderLine{line},
			[]*shipment.Shipment{s1, s2},
		)

		require.ErrorIs(t, err, services.ErrAllocationInvariantViolated)

		var violation *services.OverAllocationViolation
		require.ErrorAs(t, err, &violation)
		assert.True(t, violation.OrderLineID.IsEqual(line.ID()))
		assert.Equal(t, 13, violation.Allocated)
		assert.Equal(t, 10, violation.Ordered)
		assert.True(t, violation.LineKnown)
	})

	t.Run("should collect all over-allocated lines", func(t *testing.T) {
		lineA := makeLine(t, orderID, 5)
		lineB := makeLine(t, orderID, 3)
		s1 := makeShipment(t, orderID, map[kernel.UUID]int{lineA.ID(): 6, lineB.ID(): 4})

		err := validator.Validate(
			[]*order.OrderLine{lineA, lineB},
			[]*shipment.Shipment{s1},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "6 allocated but only 5 ordered")
		assert.Contains(t, err.Error(), "4 allocated but only 3 ordered")
	})

	t.Run("should reject allocation for a line absent from the ledger", func(t *testing.T) {
		line := makeLine(t, orderID, 10)
		strayLineID := kernel.NewUUID()
		s1 := makeShipment(t, orderID, map[kernel.UUID]int{strayLineID: 2})

		err := validator.Validate([]*order.OrderLine{line}, []*shipment.Shipment{s1})

		require.ErrorIs(t, err, services.ErrAllocationInvariantViolated)

		var violation *services.OverAllocationViolation
		require.ErrorAs(t, err, &violation)
		assert.False(t, violation.LineKnown)
		assert.Contains(t, err.Error(), "not part of the order's ledger")
	})

	t.Run("should reject unconstructed shipments", func(t *testing.T) {
		line := makeLine(t, orderID, 10)
		var zero shipment.Shipment

		err := validator.Validate([]*order.OrderLine{line}, []*shipment.Shipment{&zero})

		require.ErrorIs(t, err, shipment.ErrShipmentIsNotConstructed)
	})

	t.Run("exact full allocation is not a violation", func(t *testing.T) {
		line := makeLine(t, orderID, 4)
		s1 := makeShipment(t, orderID, map[kernel.UUID]int{line.ID(): 4})

		require.NoError(t, validator.Validate([]*order.OrderLine{line}, []*shipment.Shipment{s1}))
	})
}
