package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// CarrierRepository is the read-only contract to the carrier directory.
// The engine only needs existence checks; carrier management lives elsewhere.
type CarrierRepository interface {
	// Exists reports whether the carrier is known to the directory.
	Exists(ctx context.Context, carrierID kernel.UUID) (bool, error)
}
