package shipmentrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
// Updates use compare-and-swap on the version column: a write against a stale
// version affects zero rows and surfaces ports.ErrConcurrencyConflict, which
// command handlers resolve by reloading and retrying once.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database with version 1.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database, replacing its allocation
// set. Returns ports.ErrConcurrencyConflict if the stored version no longer
// matches the version the aggregate was loaded with.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version

	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(map[string]any{
			"carrier_id":      dto.CarrierID,
			"tracking_number": dto.TrackingNumber,
			"version":         loadedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrencyConflict
	}

	// Rewrite the allocation set wholesale; diffing buys nothing at this size.
	if err := r.db.WithContext(ctx).
		Delete(&AllocationDTO{}, "shipment_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.Allocations) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Allocations).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a shipment and its allocations using the same
// compare-and-swap guard as Update: the row must still carry the version the
// aggregate was loaded with. Deleting an emptied source through a stale
// version would also remove allocations a concurrent merge moved into it.
// Zero affected rows means a concurrent writer bumped the version or removed
// the shipment, so the caller gets ports.ErrConcurrencyConflict and its retry
// reloads the order state.
func (r *GormShipmentRepository) Delete(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Shipment row first: a failed guard must leave the allocations untouched.
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Delete(&ShipmentDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrencyConflict
	}

	if err := r.db.WithContext(ctx).
		Delete(&AllocationDTO{}, "shipment_id = ?", dto.ID).Error; err != nil {
		return err
	}

	return nil
}

// Get retrieves a shipment by ID, including its allocations.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).Preload("Allocations").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves every shipment of the given order, including
// allocations, sorted by shipment ID for deterministic validation output.
func (r *GormShipmentRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Order("id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}
