package carrierrepo

import (
	"context"

	"shipping/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCarrierRepository implements CarrierRepository using GORM.
type GormCarrierRepository struct {
	db *gorm.DB
}

// NewGormCarrierRepository creates a new GORM carrier repository.
func NewGormCarrierRepository(db *gorm.DB) *GormCarrierRepository {
	return &GormCarrierRepository{db: db}
}

// Exists reports whether the carrier is known to the directory.
func (r *GormCarrierRepository) Exists(ctx context.Context, carrierID kernel.UUID) (bool, error) {
	if err := carrierID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&CarrierDTO{}).
		Where("id = ?", carrierID.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
