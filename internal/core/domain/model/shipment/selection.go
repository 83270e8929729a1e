package shipment

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
)

var (
	// ErrInvalidSelection is the sentinel for every malformed line/quantity
	// selection: non-positive quantity, quantity above the allocated amount,
	// a line absent from the source shipment, or a duplicated line.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptySelection indicates that a merge or split was requested with no
	// line selections at all.
	ErrEmptySelection = errors.New("selection must contain at least one line")

	// ErrLineSelectionIsNotConstructed indicates that a LineSelection was not
	// created through the NewLineSelection constructor.
	ErrLineSelectionIsNotConstructed = errors.New("LineSelection must be created via NewLineSelection constructor")
)

// InvalidSelectionError reports why a single line selection cannot be applied
// to a source shipment, with enough detail for the caller to render a
// user-facing message: which line, what was requested, what was available.
type InvalidSelectionError struct {
	OrderLineID kernel.UUID
	Requested   int
	Available   int
	Reason      string
}

// NewNonPositiveQuantityError reports a selection requesting a zero or
// negative quantity.
func NewNonPositiveQuantityError(orderLineID kernel.UUID, requested int) *InvalidSelectionError {
	return &InvalidSelectionError{
		OrderLineID: orderLineID,
		Requested:   requested,
		Reason:      "quantity must be greater than 0",
	}
}

// NewLineNotAllocatedError reports a selection referencing an order line the
// source shipment holds no allocation for.
func NewLineNotAllocatedError(orderLineID kernel.UUID, requested int) *InvalidSelectionError {
	return &InvalidSelectionError{
		OrderLineID: orderLineID,
		Requested:   requested,
		Reason:      "order line is not allocated to the source shipment",
	}
}

// NewQuantityExceedsAllocationError reports a selection requesting more than
// the source shipment currently has allocated for the line.
func NewQuantityExceedsAllocationError(orderLineID kernel.UUID, requested, available int) *InvalidSelectionError {
	return &InvalidSelectionError{
		OrderLineID: orderLineID,
		Requested:   requested,
		Available:   available,
		Reason:      "requested quantity exceeds allocated quantity",
	}
}

// NewDuplicateLineError reports an order line appearing more than once in a
// single selection list. Duplicates are rejected rather than summed.
func NewDuplicateLineError(orderLineID kernel.UUID) *InvalidSelectionError {
	return &InvalidSelectionError{
		OrderLineID: orderLineID,
		Reason:      "order line appears more than once in the selection",
	}
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%s: order line %s: %s (requested %d, available %d)",
		ErrInvalidSelection, e.OrderLineID, e.Reason, e.Requested, e.Available)
}

// Unwrap returns the sentinel ErrInvalidSelection for errors.Is classification.
func (e *InvalidSelectionError) Unwrap() error {
	return ErrInvalidSelection
}

// LineSelection is a validated (order line, quantity) pair naming how much of
// one line a merge or split should move out of the source shipment.
type LineSelection struct {
	orderLineID kernel.UUID
	quantity    int

	guard kernel.ConstructorGuard
}

// NewLineSelection creates a LineSelection with validation. The order line ID
// must be valid and the quantity must be positive.
func NewLineSelection(orderLineID kernel.UUID, quantity int) (LineSelection, error) {
	if err := orderLineID.Validate(); err != nil {
		return LineSelection{}, err
	}

	if quantity <= 0 {
		return LineSelection{}, NewNonPositiveQuantityError(orderLineID, quantity)
	}

	return LineSelection{
		orderLineID: orderLineID,
		quantity:    quantity,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the selection was created through the constructor.
func (s LineSelection) Validate() error {
	return s.guard.Validate(ErrLineSelectionIsNotConstructed)
}

// OrderLineID returns the selected order line's identifier.
func (s LineSelection) OrderLineID() kernel.UUID {
	return s.orderLineID
}

// Quantity returns the quantity to move.
func (s LineSelection) Quantity() int {
	return s.quantity
}

// ValidateLineSelections checks a selection list as a whole: it must be
// non-empty, every element must be properly constructed, and no order line
// may appear twice.
func ValidateLineSelections(selections []LineSelection) error {
	if len(selections) == 0 {
		return ErrEmptySelection
	}

	seen := make(map[kernel.UUID]struct{}, len(selections))
	for _, sel := range selections {
		if err := sel.Validate(); err != nil {
			return err
		}

		if _, ok := seen[sel.OrderLineID()]; ok {
			return NewDuplicateLineError(sel.OrderLineID())
		}
		seen[sel.OrderLineID()] = struct{}{}
	}

	return nil
}
