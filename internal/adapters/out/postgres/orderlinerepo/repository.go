package orderlinerepo

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderLineRepository implements OrderLineRepository using GORM.
type GormOrderLineRepository struct {
	db *gorm.DB
}

// NewGormOrderLineRepository creates a new GORM order line repository.
func NewGormOrderLineRepository(db *gorm.DB) *GormOrderLineRepository {
	return &GormOrderLineRepository{db: db}
}

// GetForOrder retrieves all line items of the given order, sorted by line ID.
// An order with no lines yields an empty slice, not an error.
func (r *GormOrderLineRepository) GetForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.OrderLine, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderLineDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	lines := make([]*order.OrderLine, 0, len(dtos))
	for _, dto := range dtos {
		line, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}
