// Package shipment provides domain entities and business logic for shipment
// reconciliation. It implements the Shipment aggregate root that owns line
// allocations and enforces quantity-conservation rules when allocations are
// moved between shipments of the same order.
//
// The package includes:
//   - Shipment: the aggregate root holding carrier, tracking number, and allocations
//   - Allocation: the quantity of one order line assigned to one shipment
//   - LineSelection: a validated (order line, quantity) pair used as merge/split input
//
// Key business rules:
//   - Every allocation quantity is positive
//   - A shipment never holds two allocations for the same order line
//   - Moving allocations is all-or-nothing: the whole selection is validated
//     against the source before any quantity changes hands
//   - Moves never create or destroy quantity, only redistribute it
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
