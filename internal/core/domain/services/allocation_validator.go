package services

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
)

// ErrAllocationInvariantViolated is the sentinel for every allocation
// invariant violation reported by the AllocationValidator.
var ErrAllocationInvariantViolated = errors.New("allocation invariant violated")

// NonPositiveQuantityViolation reports an allocation whose quantity is zero
// or negative.
type NonPositiveQuantityViolation struct {
	ShipmentID  kernel.UUID
	OrderLineID kernel.UUID
	Quantity    int
}

func (v *NonPositiveQuantityViolation) Error() string {
	return fmt.Sprintf("%s: shipment %s allocates %d of order line %s, quantity must be greater than 0",
		ErrAllocationInvariantViolated, v.ShipmentID, v.Quantity, v.OrderLineID)
}

func (v *NonPositiveQuantityViolation) Unwrap() error {
	return ErrAllocationInvariantViolated
}

// DuplicateAllocationViolation reports a shipment holding two allocations for
// the same order line.
type DuplicateAllocationViolation struct {
	ShipmentID  kernel.UUID
	OrderLineID kernel.UUID
}

func (v *DuplicateAllocationViolation) Error() string {
	return fmt.Sprintf("%s: shipment %s holds more than one allocation for order line %s",
		ErrAllocationInvariantViolated, v.ShipmentID, v.OrderLineID)
}

func (v *DuplicateAllocationViolation) Unwrap() error {
	return ErrAllocationInvariantViolated
}

// OverAllocationViolation reports an order line whose allocated sum across
// all shipments of the order exceeds the ordered quantity, or an allocation
// referencing a line the ledger does not know.
type OverAllocationViolation struct {
	OrderLineID kernel.UUID
	Allocated   int
	Ordered     int
	LineKnown   bool
}

func (v *OverAllocationViolation) Error() string {
	if !v.LineKnown {
		return fmt.Sprintf("%s: order line %s is not part of the order's ledger",
			ErrAllocationInvariantViolated, v.OrderLineID)
	}
	return fmt.Sprintf("%s: order line %s has %d allocated but only %d ordered",
		ErrAllocationInvariantViolated, v.OrderLineID, v.Allocated, v.Ordered)
}

func (v *OverAllocationViolation) Unwrap() error {
	return ErrAllocationInvariantViolated
}

// AllocationValidator is a stateless domain service that verifies the
// quantity-conservation invariants over all shipments of a single order:
//
//  1. every allocation quantity is positive;
//  2. no shipment holds two allocations for the same order line;
//  3. per order line, the allocated sum across all shipments stays within
//     the ordered quantity.
//
// The checks run in that order, short-circuiting on the first failing class
// while collecting every violation of that class. Reconciliation handlers run
// it both before and after applying a change: merge and split perform two
// linked writes, and the second pass guards against store bugs or concurrent
// interference slipping past the first.
type AllocationValidator struct{}

// NewAllocationValidator creates a new AllocationValidator instance.
func NewAllocationValidator() AllocationValidator {
	return AllocationValidator{}
}

// Validate checks the given shipments against the order's line ledger.
// Returns nil when every invariant holds, otherwise all violations of the
// first failing class joined into one error.
func (v AllocationValidator) Validate(lines []*order.OrderLine, shipments []*shipment.Shipment) error {
	for _, s := range shipments {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}

	if err := v.checkQuantities(shipments); err != nil {
		return err
	}

	if err := v.checkDuplicates(shipments); err != nil {
		return err
	}

	return v.checkConservation(lines, shipments)
}

// checkQuantities collects every non-positive allocation quantity.
func (v AllocationValidator) checkQuantities(shipments []*shipment.Shipment) error {
	var violations []error
	for _, s := range shipments {
		for _, alloc := range s.Allocations() {
			if alloc.Quantity() <= 0 {
				violations = append(violations, &NonPositiveQuantityViolation{
					ShipmentID:  s.ID(),
					OrderLineID: alloc.OrderLineID(),
					Quantity:    alloc.Quantity(),
				})
			}
		}
	}
	return errors.Join(violations...)
}

// checkDuplicates collects every order line allocated twice within one shipment.
func (v AllocationValidator) checkDuplicates(shipments []*shipment.Shipment) error {
	var violations []error
	for _, s := range shipments {
		seen := make(map[kernel.UUID]bool)
		for _, alloc := range s.Allocations() {
			if seen[alloc.OrderLineID()] {
				violations = append(violations, &DuplicateAllocationViolation{
					ShipmentID:  s.ID(),
					OrderLineID: alloc.OrderLineID(),
				})
				continue
			}
			seen[alloc.OrderLineID()] = true
		}
	}
	return errors.Join(violations...)
}

// checkConservation collects every order line whose allocated sum exceeds the
// ordered quantity, plus allocations referencing lines absent from the ledger.
func (v AllocationValidator) checkConservation(
	lines []*order.OrderLine,
	shipments []*shipment.Shipment,
) error {
	ordered := make(map[kernel.UUID]int, len(lines))
	for _, l := range lines {
		ordered[l.ID()] = l.OrderedQuantity()
	}

	allocated := make(map[kernel.UUID]int)
	var lineOrder []kernel.UUID
	for _, s := range shipments {
		for _, alloc := range s.Allocations() {
			if _, ok := allocated[alloc.OrderLineID()]; !ok {
				lineOrder = append(lineOrder, alloc.OrderLineID())
			}
			allocated[alloc.OrderLineID()] += alloc.Quantity()
		}
	}

	var violations []error
	for _, lineID := range lineOrder {
		orderedQty, known := ordered[lineID]
		if !known {
			violations = append(violations, &OverAllocationViolation{
				OrderLineID: lineID,
				Allocated:   allocated[lineID],
			})
			continue
		}
		if allocated[lineID] > orderedQty {
			violations = append(violations, &OverAllocationViolation{
				OrderLineID: lineID,
				Allocated:   allocated[lineID],
				Ordered:     orderedQty,
				LineKnown:   true,
			})
		}
	}
	return errors.Join(violations...)
}
