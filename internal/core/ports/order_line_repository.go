package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// OrderLineRepository is the read-only contract to the order line ledger.
// The reconciliation engine treats its answers as ground truth for ordered
// quantities; it never writes through this port.
type OrderLineRepository interface {
	// GetForOrder retrieves all line items of the given order.
	GetForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.OrderLine, error)
}
