package queries

import (
	"context"
	"database/sql"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentForEditingQueryHandler loads the editable view of a shipment
// straight from the database, bypassing the domain model.
//
// Example:
//
//	handler := NewGetShipmentForEditingQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, alloc := range resp.Allocations {
//	    fmt.Printf("line %s: %d of %d\n", alloc.OrderLineID, alloc.Quantity, alloc.OrderedQuantity)
//	}
type GetShipmentForEditingQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentForEditingQueryHandler creates a handler for shipment editing queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentForEditingQueryHandler(db *gorm.DB) GetShipmentForEditingQueryHandler {
	return GetShipmentForEditingQueryHandler{db: db}
}

// Handle loads the shipment and its allocations joined with the order line
// ledger. Returns an object-not-found error when the shipment does not exist
// or belongs to a different order.
func (h GetShipmentForEditingQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentForEditingQuery,
) (ShipmentForEditingResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentForEditingResponse{}, err
	}

	var resp ShipmentForEditingResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			carrier_id,
			tracking_number
		FROM shipments
		WHERE id = ? AND order_id = ?
	`, query.ShipmentID().String(), query.OrderID().String()).Row()

	var id, orderID uuid.UUID
	var carrierID sql.Null[uuid.UUID]
	var trackingNumber string

	err := row.Scan(&id, &orderID, &carrierID, &trackingNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return ShipmentForEditingResponse{}, errs.NewObjectNotFoundError("shipmentID", query.ShipmentID())
	}
	if err != nil {
		return ShipmentForEditingResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ShipmentForEditingResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return ShipmentForEditingResponse{}, err
	}
	if carrierID.Valid {
		cid, cidErr := kernel.UUIDFromBytes(carrierID.V[:])
		if cidErr != nil {
			return ShipmentForEditingResponse{}, cidErr
		}
		resp.CarrierID = &cid
	}
	resp.TrackingNumber = trackingNumber

	allocations, err := h.loadAllocations(ctx, query.ShipmentID())
	if err != nil {
		return ShipmentForEditingResponse{}, err
	}
	resp.Allocations = allocations

	return resp, nil
}

func (h GetShipmentForEditingQueryHandler) loadAllocations(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]AllocationForEditingResponse, error) {
	allocations := make([]AllocationForEditingResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.order_line_id,
			ol.product_id,
			a.quantity,
			ol.ordered_quantity
		FROM allocations a
		JOIN order_lines ol ON ol.id = a.order_line_id
		WHERE a.shipment_id = ?
		ORDER BY a.order_line_id
	`, shipmentID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var alloc AllocationForEditingResponse
		var lineID, productID uuid.UUID

		err = rows.Scan(&lineID, &productID, &alloc.Quantity, &alloc.OrderedQuantity)
		if err != nil {
			return nil, err
		}

		if alloc.OrderLineID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
			return nil, err
		}
		if alloc.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		allocations = append(allocations, alloc)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return allocations, nil
}
