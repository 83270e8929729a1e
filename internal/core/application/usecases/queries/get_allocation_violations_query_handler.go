package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllocationViolationsQueryHandler audits persisted allocations against
// the quantity invariants using set-based SQL, so whole-database scans stay
// cheap regardless of order count.
type GetAllocationViolationsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllocationViolationsQueryHandler creates a handler for allocation audits.
// Requires a GORM database connection for query execution.
func NewGetAllocationViolationsQueryHandler(db *gorm.DB) GetAllocationViolationsQueryHandler {
	return GetAllocationViolationsQueryHandler{db: db}
}

// Handle reports every invariant violation found in stored allocations:
// non-positive quantities, duplicated lines within a shipment, allocations
// referencing lines unknown to their order, and per-line totals above the
// ordered quantity.
func (h GetAllocationViolationsQueryHandler) Handle(
	ctx context.Context,
	query GetAllocationViolationsQuery,
) ([]AllocationViolationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	violations := make([]AllocationViolationResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT 'non_positive_quantity' AS kind, s.order_id, a.order_line_id, a.quantity AS allocated, 0 AS ordered
		FROM allocations a
		JOIN shipments s ON s.id = a.shipment_id
		WHERE a.quantity <= 0
		UNION ALL
		SELECT 'duplicate_allocation', s.order_id, a.order_line_id, 0, 0
		FROM allocations a
		JOIN shipments s ON s.id = a.shipment_id
		GROUP BY a.shipment_id, s.order_id, a.order_line_id
		HAVING COUNT(*) > 1
		UNION ALL
		SELECT 'unknown_order_line', s.order_id, a.order_line_id, 0, 0
		FROM allocations a
		JOIN shipments s ON s.id = a.shipment_id
		LEFT JOIN order_lines ol ON ol.id = a.order_line_id AND ol.order_id = s.order_id
		WHERE ol.id IS NULL
		UNION ALL
		SELECT 'over_allocation', s.order_id, a.order_line_id, SUM(a.quantity), ol.ordered_quantity
		FROM allocations a
		JOIN shipments s ON s.id = a.shipment_id
		JOIN order_lines ol ON ol.id = a.order_line_id AND ol.order_id = s.order_id
		GROUP BY s.order_id, a.order_line_id, ol.ordered_quantity
		HAVING SUM(a.quantity) > ol.ordered_quantity
		ORDER BY 1, 2, 3
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var violation AllocationViolationResponse
		var orderID, lineID uuid.UUID

		err = rows.Scan(
			&violation.Kind,
			&orderID,
			&lineID,
			&violation.Allocated,
			&violation.Ordered,
		)
		if err != nil {
			return nil, err
		}

		if violation.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if violation.OrderLineID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
			return nil, err
		}
		violations = append(violations, violation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return violations, nil
}
