package shipment

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through the NewShipment or RestoreShipment constructors.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrCrossOrderMove indicates an attempt to move allocations between
	// shipments of different orders. Never recoverable by retry.
	ErrCrossOrderMove = errors.New("shipments belong to different orders")

	// ErrSameShipmentMove indicates an attempt to move allocations from a
	// shipment into itself.
	ErrSameShipmentMove = errors.New("source and destination are the same shipment")

	// ErrDuplicateAllocation indicates restored state holding two allocations
	// for the same order line within one shipment.
	ErrDuplicateAllocation = errors.New("shipment holds two allocations for the same order line")
)

// Shipment represents one physical dispatch grouping of an order's line
// quantities. It is the aggregate root for allocation state and the only way
// allocations are created, moved, or removed.
//
// Shipment follows these invariants:
//   - Must have valid identifiers for itself and its owning order
//   - Holds at most one allocation per order line
//   - Every allocation it holds has a positive quantity
//   - Can only be created through NewShipment or RestoreShipment
//
// The carrier reference and tracking number are descriptive attributes; both
// are optional and editing them never touches allocation state.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// orderID identifies the order this shipment belongs to
	orderID kernel.UUID

	// carrierID references the carrier, nil when none is assigned yet
	carrierID *kernel.UUID

	// trackingNumber is free text supplied by the carrier; may be empty
	trackingNumber string

	// version is the optimistic concurrency token maintained by the store
	version int

	// allocations is the set of line quantities carried by this shipment
	allocations []*Allocation

	guard kernel.ConstructorGuard
}

// NewShipment creates an empty Shipment for an order, optionally with a
// carrier already assigned. Allocations are added afterwards by moving them
// out of another shipment of the same order.
func NewShipment(id, orderID kernel.UUID, carrierID *kernel.UUID) (*Shipment, error) {
	s := &Shipment{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrierID(carrierID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistent storage, including
// its descriptive fields, version token, and allocations. Restored state is
// held to the same invariants as live state: allocations must be valid and no
// order line may appear twice.
func RestoreShipment(
	id, orderID kernel.UUID,
	carrierID *kernel.UUID,
	trackingNumber string,
	version int,
	allocations []*Allocation,
) (*Shipment, error) {
	s, err := NewShipment(id, orderID, carrierID)
	if err != nil {
		return nil, err
	}

	s.trackingNumber = trackingNumber
	s.version = version

	seen := make(map[kernel.UUID]struct{}, len(allocations))
	for _, alloc := range allocations {
		if err = alloc.Validate(); err != nil {
			return nil, err
		}

		if _, ok := seen[alloc.OrderLineID()]; ok {
			return nil, ErrDuplicateAllocation
		}
		seen[alloc.OrderLineID()] = struct{}{}
	}
	s.allocations = allocations

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identifier of the owning order.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// CarrierID returns the assigned carrier's identifier, or nil when none is
// assigned.
func (s *Shipment) CarrierID() *kernel.UUID {
	return s.carrierID
}

// TrackingNumber returns the carrier tracking number; empty when not set.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// Version returns the optimistic concurrency token loaded from the store.
func (s *Shipment) Version() int {
	return s.version
}

// Allocations returns the shipment's allocations. The slice is a copy; the
// allocations themselves stay owned by the aggregate.
func (s *Shipment) Allocations() []*Allocation {
	out := make([]*Allocation, len(s.allocations))
	copy(out, s.allocations)
	return out
}

// AllocationFor returns the allocation for the given order line, or nil when
// the shipment holds none.
func (s *Shipment) AllocationFor(orderLineID kernel.UUID) *Allocation {
	for _, alloc := range s.allocations {
		if alloc.OrderLineID().IsEqual(orderLineID) {
			return alloc
		}
	}
	return nil
}

// IsEmpty reports whether the shipment holds no allocations. An emptied
// shipment is deleted by the reconciliation engine as a postcondition of the
// merge or split that drained it.
func (s *Shipment) IsEmpty() bool {
	return len(s.allocations) == 0
}

// SetTrackingNumber replaces the tracking number. An empty string clears it.
func (s *Shipment) SetTrackingNumber(trackingNumber string) {
	s.trackingNumber = trackingNumber
}

// AssignCarrier sets the carrier reference. Whether the carrier actually
// exists is checked against the carrier directory by the application layer;
// the aggregate only requires a well-formed identifier.
func (s *Shipment) AssignCarrier(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	s.carrierID = &carrierID
	return nil
}

// ClearCarrier removes the carrier reference.
func (s *Shipment) ClearCarrier() {
	s.carrierID = nil
}

// MoveAllocationsTo moves the selected quantities from this shipment into
// dest. Both shipments must belong to the same order and must be distinct.
//
// The operation is all-or-nothing: every selection is checked against the
// source's current allocations before any quantity changes hands, so a single
// invalid pair fails the whole move with no partial effect. Per line the move
// decrements the source allocation (removing it at zero) and increments the
// destination allocation (creating it when absent); total allocated quantity
// per line is conserved.
//
// The caller is responsible for deleting this shipment if the move empties it.
func (s *Shipment) MoveAllocationsTo(dest *Shipment, selections []LineSelection) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return err
	}

	if s.id.IsEqual(dest.id) {
		return ErrSameShipmentMove
	}
	if !s.orderID.IsEqual(dest.orderID) {
		return ErrCrossOrderMove
	}

	if err := ValidateLineSelections(selections); err != nil {
		return err
	}

	// Validate the whole batch before mutating anything.
	for _, sel := range selections {
		alloc := s.AllocationFor(sel.OrderLineID())
		if alloc == nil {
			return NewLineNotAllocatedError(sel.OrderLineID(), sel.Quantity())
		}
		if sel.Quantity() > alloc.Quantity() {
			return NewQuantityExceedsAllocationError(sel.OrderLineID(), sel.Quantity(), alloc.Quantity())
		}
	}

	for _, sel := range selections {
		if err := s.removeQuantity(sel.OrderLineID(), sel.Quantity()); err != nil {
			return err
		}
		if err := dest.addQuantity(sel.OrderLineID(), sel.Quantity()); err != nil {
			return err
		}
	}

	return nil
}

// addQuantity increments the allocation for the given line, creating it when
// absent. qty must already be validated as positive.
func (s *Shipment) addQuantity(orderLineID kernel.UUID, qty int) error {
	if alloc := s.AllocationFor(orderLineID); alloc != nil {
		alloc.increase(qty)
		return nil
	}

	alloc, err := NewAllocation(orderLineID, qty)
	if err != nil {
		return err
	}
	s.allocations = append(s.allocations, alloc)
	return nil
}

// removeQuantity decrements the allocation for the given line, dropping the
// allocation entirely when it reaches zero.
func (s *Shipment) removeQuantity(orderLineID kernel.UUID, qty int) error {
	alloc := s.AllocationFor(orderLineID)
	if alloc == nil {
		return NewLineNotAllocatedError(orderLineID, qty)
	}

	remaining, err := alloc.decrease(qty)
	if err != nil {
		return err
	}

	if remaining == 0 {
		for i, a := range s.allocations {
			if a == alloc {
				s.allocations = append(s.allocations[:i], s.allocations[i+1:]...)
				break
			}
		}
	}

	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setCarrierID(carrierID *kernel.UUID) error {
	if carrierID == nil {
		return nil
	}
	if err := carrierID.Validate(); err != nil {
		return err
	}
	s.carrierID = carrierID
	return nil
}
