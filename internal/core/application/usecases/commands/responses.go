package commands

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentResponse is the projection of a shipment returned by the mutating
// reconciliation operations, so callers can render the result without issuing
// a follow-up query.
type ShipmentResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	CarrierID      *kernel.UUID
	TrackingNumber string
	Allocations    []AllocationResponse
}

// AllocationResponse is one line allocation within a ShipmentResponse.
type AllocationResponse struct {
	OrderLineID kernel.UUID
	Quantity    int
}

// newShipmentResponse projects a shipment aggregate into its response form.
func newShipmentResponse(s *shipment.Shipment) ShipmentResponse {
	allocations := make([]AllocationResponse, 0, len(s.Allocations()))
	for _, alloc := range s.Allocations() {
		allocations = append(allocations, AllocationResponse{
			OrderLineID: alloc.OrderLineID(),
			Quantity:    alloc.Quantity(),
		})
	}

	return ShipmentResponse{
		ID:             s.ID(),
		OrderID:        s.OrderID(),
		CarrierID:      s.CarrierID(),
		TrackingNumber: s.TrackingNumber(),
		Allocations:    allocations,
	}
}
