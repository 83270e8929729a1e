package shipment

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrAllocationIsNotConstructed indicates that an Allocation was not created
// through the NewAllocation constructor.
var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

// Allocation is the quantity of one order line assigned to one shipment.
// It is owned exclusively by its shipment; quantity changes happen only
// through the owning aggregate so the positive-quantity invariant and the
// one-allocation-per-line rule cannot be bypassed.
type Allocation struct {
	// orderLineID references the order line this quantity belongs to
	orderLineID kernel.UUID

	// quantity is the allocated amount; always greater than 0
	quantity int

	guard kernel.ConstructorGuard
}

// NewAllocation creates an Allocation with validation. The order line ID must
// be valid and the quantity must be positive.
func NewAllocation(orderLineID kernel.UUID, quantity int) (*Allocation, error) {
	alloc := &Allocation{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		alloc.setOrderLineID(orderLineID),
		alloc.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return alloc, nil
}

// RestoreAllocation reconstructs an Allocation from persistent storage.
// A persisted allocation that fails the same validation as NewAllocation
// indicates corrupted data and is rejected.
func RestoreAllocation(orderLineID kernel.UUID, quantity int) (*Allocation, error) {
	return NewAllocation(orderLineID, quantity)
}

// Validate ensures the Allocation was properly constructed through NewAllocation.
func (a *Allocation) Validate() error {
	if a == nil {
		return ErrAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

// OrderLineID returns the referenced order line's identifier.
func (a *Allocation) OrderLineID() kernel.UUID {
	return a.orderLineID
}

// Quantity returns the allocated quantity.
func (a *Allocation) Quantity() int {
	return a.quantity
}

// increase adds qty to the allocation. Only the owning shipment calls this;
// qty has already been validated as positive.
func (a *Allocation) increase(qty int) {
	a.quantity += qty
}

// decrease removes qty from the allocation. Returns the remaining quantity.
// The owning shipment drops the allocation when it reaches zero.
func (a *Allocation) decrease(qty int) (int, error) {
	if qty > a.quantity {
		return a.quantity, NewQuantityExceedsAllocationError(a.orderLineID, qty, a.quantity)
	}
	a.quantity -= qty
	return a.quantity, nil
}

func (a *Allocation) setOrderLineID(orderLineID kernel.UUID) error {
	if err := orderLineID.Validate(); err != nil {
		return err
	}
	a.orderLineID = orderLineID
	return nil
}

func (a *Allocation) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	a.quantity = quantity
	return nil
}
