// Package ports defines repository interfaces for the shipment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ErrConcurrencyConflict is returned by ShipmentRepository.Update and Delete
// when the persisted shipment was modified since it was loaded (stale version
// token).
// Reconciliation handlers retry the whole operation once on this error before
// surfacing it to the caller.
var ErrConcurrencyConflict = errors.New("shipment was modified concurrently")

// ShipmentRepository defines the persistence contract for shipment aggregates
// and their allocations. Implementations must serialize writes per order so
// two reconciliation operations on shipments of the same order cannot
// interleave their read-modify-write of allocations; writes to different
// orders are independent.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate with its allocations.
	// The shipment must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate, replacing
	// its allocation set. Returns ErrConcurrencyConflict when the stored
	// version no longer matches the aggregate's loaded version.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Delete removes a shipment and its allocations. Used by the engine when
	// a merge or split empties the source shipment; callers never delete
	// shipments directly. Returns ErrConcurrencyConflict when the stored
	// version no longer matches the aggregate's loaded version, or when the
	// row is already gone: the aggregate was loaded in this transaction, so
	// a missing row means a concurrent writer won, not a caller mistake.
	Delete(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier,
	// including all of its allocations.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllForOrder retrieves every shipment of the given order. Needed for
	// whole-order invariant validation and merge-candidate listing.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error)
}
