// Package commands contains business operations that modify shipment state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// invariant checks before and after the mutation, and persistence.
package commands

import (
	"context"
	"errors"

	"shipping/internal/core/ports"
)

// ErrUnknownCarrier indicates a carrier identifier that the carrier directory
// does not know. Surfaced to the caller, never retried.
var ErrUnknownCarrier = errors.New("carrier is not known to the carrier directory")

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// OrderLineRepoFactory provides access to the order line ledger within a transaction.
	OrderLineRepoFactory interface {
		OrderLineRepository() ports.OrderLineRepository
	}

	// CarrierRepoFactory provides access to the carrier directory within a transaction.
	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	// ShipmentUoW manages transactions for operations touching a single
	// shipment's descriptive fields. Used by EditShipment.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		CarrierRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// UoW manages transactions for reconciliation operations that rewrite
	// allocations across shipments and must read the order line ledger in
	// the same transaction. Used by MergeShipment and SplitShipment.
	UoW interface {
		TxManager
		ShipmentRepoFactory
		OrderLineRepoFactory
		CarrierRepoFactory
	}

	// UoWFactory creates new unit of work instances for reconciliation operations.
	UoWFactory interface {
		Create() UoW
	}
)
