// Package order provides the read model of an order's line items for the
// shipment reconciliation engine. Orders and their lines are created and
// owned elsewhere; this engine treats them as ground truth for how much of
// each product was ordered.
//
// The package includes:
//   - OrderLine: an immutable line item with its fixed ordered quantity
//
// Key business rules:
//   - An order line belongs to exactly one order
//   - The ordered quantity is positive and never changes through shipment
//     operations; allocations may only redistribute it across shipments
package order
