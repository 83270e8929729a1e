// Package queries contains read operations for shipment reconciliation.
// Implements the Query pattern for read-only operations in the CQRS
// architecture. Handlers read the database directly and return lightweight
// response structs; they never load domain aggregates.
package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentForEditingQueryIsNotConstructed = errors.New(
	"GetShipmentForEditingQuery must be created via NewGetShipmentForEditingQuery constructor",
)

// GetShipmentForEditingQuery retrieves one shipment of an order together with
// its allocations and, per allocation, the ordered quantity of the line. The
// per-line ceiling lets an editing surface bound quantity inputs without a
// second round trip.
//
// Example:
//
//	query, err := NewGetShipmentForEditingQuery(orderID, shipmentID)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	handler := NewGetShipmentForEditingQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // shipment does not exist or belongs to another order
//	}
type GetShipmentForEditingQuery struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentForEditingQuery creates a query scoped to one order. The
// shipment must belong to the given order or the handler reports not found.
func NewGetShipmentForEditingQuery(
	orderID, shipmentID kernel.UUID,
) (GetShipmentForEditingQuery, error) {
	query := GetShipmentForEditingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setShipmentID(shipmentID),
	); err != nil {
		return GetShipmentForEditingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentForEditingQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentForEditingQueryIsNotConstructed)
}

// OrderID returns the order the shipment must belong to.
func (q GetShipmentForEditingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ShipmentID returns the shipment to load.
func (q GetShipmentForEditingQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

func (q *GetShipmentForEditingQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

func (q *GetShipmentForEditingQuery) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	q.shipmentID = shipmentID
	return nil
}

// ShipmentForEditingResponse is the editable view of one shipment.
type ShipmentForEditingResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	CarrierID      *kernel.UUID
	TrackingNumber string
	Allocations    []AllocationForEditingResponse
}

// AllocationForEditingResponse pairs an allocated quantity with the line's
// ordered quantity, the upper bound any edit must respect.
type AllocationForEditingResponse struct {
	OrderLineID     kernel.UUID
	ProductID       kernel.UUID
	Quantity        int
	OrderedQuantity int
}
