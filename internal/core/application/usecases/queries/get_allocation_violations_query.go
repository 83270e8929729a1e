package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetAllocationViolationsQueryIsNotConstructed = errors.New(
	"GetAllocationViolationsQuery must be created via NewGetAllocationViolationsQuery constructor",
)

// Violation kinds reported by the allocation audit.
const (
	ViolationNonPositiveQuantity = "non_positive_quantity"
	ViolationDuplicateAllocation = "duplicate_allocation"
	ViolationOverAllocation      = "over_allocation"
	ViolationUnknownOrderLine    = "unknown_order_line"
)

// GetAllocationViolationsQuery scans all persisted allocations for invariant
// violations. Normal operation never produces any; the audit exists to catch
// writes that bypassed the engine.
//
// Example:
//
//	query := NewGetAllocationViolationsQuery()
//	handler := NewGetAllocationViolationsQueryHandler(db)
//
//	violations, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, v := range violations {
//	    log.Printf("%s: order %s line %s", v.Kind, v.OrderID, v.OrderLineID)
//	}
type GetAllocationViolationsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllocationViolationsQuery creates a query to audit all allocations.
// This is a parameterless query that scans every order.
func NewGetAllocationViolationsQuery() GetAllocationViolationsQuery {
	return GetAllocationViolationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllocationViolationsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllocationViolationsQueryIsNotConstructed)
}

// AllocationViolationResponse describes one detected violation. Allocated and
// Ordered are only meaningful for over-allocation findings.
type AllocationViolationResponse struct {
	Kind        string
	OrderID     kernel.UUID
	OrderLineID kernel.UUID
	Allocated   int
	Ordered     int
}
