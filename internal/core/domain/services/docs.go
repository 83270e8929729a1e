// Package services provides domain services that check business rules
// spanning multiple aggregates in the shipping system. It implements logic
// that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - AllocationValidator: a pure service verifying quantity-conservation
//     invariants across all shipments of one order
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
