package queries

import (
	"context"
	"database/sql"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMergeCandidatesQueryHandler lists merge targets for a shipment directly
// from the database.
type GetMergeCandidatesQueryHandler struct {
	db *gorm.DB
}

// NewGetMergeCandidatesQueryHandler creates a handler for merge candidate queries.
// Requires a GORM database connection for query execution.
func NewGetMergeCandidatesQueryHandler(db *gorm.DB) GetMergeCandidatesQueryHandler {
	return GetMergeCandidatesQueryHandler{db: db}
}

// Handle returns every other shipment of the order, with its total allocated
// quantity. Results are sorted by shipment ID for consistent output.
func (h GetMergeCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetMergeCandidatesQuery,
) ([]MergeCandidateResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]MergeCandidateResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.carrier_id,
			s.tracking_number,
			COALESCE(SUM(a.quantity), 0) AS allocation_sum
		FROM shipments s
		LEFT JOIN allocations a ON a.shipment_id = s.id
		WHERE s.order_id = ? AND s.id != ?
		GROUP BY s.id, s.carrier_id, s.tracking_number
		ORDER BY s.id
	`, query.OrderID().String(), query.ShipmentID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var candidate MergeCandidateResponse
		var id uuid.UUID
		var carrierID sql.Null[uuid.UUID]

		err = rows.Scan(&id, &carrierID, &candidate.TrackingNumber, &candidate.AllocationSum)
		if err != nil {
			return nil, err
		}

		if candidate.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if carrierID.Valid {
			cid, cidErr := kernel.UUIDFromBytes(carrierID.V[:])
			if cidErr != nil {
				return nil, cidErr
			}
			candidate.CarrierID = &cid
		}
		candidates = append(candidates, candidate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}
