package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrOrderLineIsNotConstructed is returned when an OrderLine instance was not
// created through the NewOrderLine constructor.
var ErrOrderLineIsNotConstructed = errors.New("OrderLine must be created via NewOrderLine constructor")

// OrderLine is the read model of a single purchased product line within an
// order. The reconciliation engine never creates, updates, or deletes order
// lines; it only reads them to know the ceiling for allocated quantities.
//
// OrderLine follows these invariants:
//   - Must have valid identifiers for the line, its order, and its product
//   - The ordered quantity is a positive integer fixed at order creation
type OrderLine struct {
	// id is the stable identifier of the line
	id kernel.UUID

	// orderID identifies the owning order
	orderID kernel.UUID

	// productID references the purchased product
	productID kernel.UUID

	// orderedQuantity is the quantity purchased; immutable from this engine's
	// perspective
	orderedQuantity int

	guard kernel.ConstructorGuard
}

// NewOrderLine creates an OrderLine with validation. All identifiers must be
// valid and the ordered quantity must be positive.
func NewOrderLine(id, orderID, productID kernel.UUID, orderedQuantity int) (*OrderLine, error) {
	line := &OrderLine{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setOrderID(orderID),
		line.setProductID(productID),
		line.setOrderedQuantity(orderedQuantity),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreOrderLine reconstructs an OrderLine from persistent storage.
// The same validation as NewOrderLine applies; a line that cannot satisfy it
// indicates corrupted ledger data.
func RestoreOrderLine(id, orderID, productID kernel.UUID, orderedQuantity int) (*OrderLine, error) {
	return NewOrderLine(id, orderID, productID, orderedQuantity)
}

// Validate ensures the OrderLine was properly constructed through NewOrderLine.
func (l *OrderLine) Validate() error {
	if l == nil {
		return ErrOrderLineIsNotConstructed
	}
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

// IsEqual compares two order lines by their unique identifiers.
func (l *OrderLine) IsEqual(other *OrderLine) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the line's unique identifier.
func (l *OrderLine) ID() kernel.UUID {
	return l.id
}

// OrderID returns the identifier of the owning order.
func (l *OrderLine) OrderID() kernel.UUID {
	return l.orderID
}

// ProductID returns the purchased product reference.
func (l *OrderLine) ProductID() kernel.UUID {
	return l.productID
}

// OrderedQuantity returns the quantity purchased on this line.
func (l *OrderLine) OrderedQuantity() int {
	return l.orderedQuantity
}

func (l *OrderLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *OrderLine) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	l.orderID = orderID
	return nil
}

func (l *OrderLine) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *OrderLine) setOrderedQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderedQuantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	l.orderedQuantity = quantity
	return nil
}
