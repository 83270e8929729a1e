package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetMergeCandidatesQueryIsNotConstructed = errors.New(
	"GetMergeCandidatesQuery must be created via NewGetMergeCandidatesQuery constructor",
)

// GetMergeCandidatesQuery lists the shipments of an order that a given
// shipment could merge into: every other shipment of the same order. An empty
// result is a valid answer, not an error.
//
// Example:
//
//	query, err := NewGetMergeCandidatesQuery(orderID, shipmentID)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	handler := NewGetMergeCandidatesQueryHandler(db)
//	candidates, err := handler.Handle(ctx, query)
type GetMergeCandidatesQuery struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetMergeCandidatesQuery creates a query for the merge targets available
// to the given shipment within its order.
func NewGetMergeCandidatesQuery(
	orderID, shipmentID kernel.UUID,
) (GetMergeCandidatesQuery, error) {
	query := GetMergeCandidatesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setShipmentID(shipmentID),
	); err != nil {
		return GetMergeCandidatesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMergeCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetMergeCandidatesQueryIsNotConstructed)
}

// OrderID returns the order whose shipments are candidates.
func (q GetMergeCandidatesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ShipmentID returns the shipment excluded from the candidate list.
func (q GetMergeCandidatesQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

func (q *GetMergeCandidatesQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

func (q *GetMergeCandidatesQuery) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	q.shipmentID = shipmentID
	return nil
}

// MergeCandidateResponse summarizes one shipment a merge could target.
type MergeCandidateResponse struct {
	ID             kernel.UUID
	CarrierID      *kernel.UUID
	TrackingNumber string
	AllocationSum  int
}
