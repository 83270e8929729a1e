// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment domain aggregate, handling
// the conversion between domain entities and database representations.
package shipmentrepo

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// Maps shipment domain entities to relational database tables. The version
// column carries the optimistic concurrency token checked on every update.
type ShipmentDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CarrierID      *uuid.UUID      `gorm:"type:uuid;index"`
	TrackingNumber string          `gorm:"type:varchar(255);not null"`
	Version        int             `gorm:"type:int;not null"`
	Allocations    []AllocationDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// AllocationDTO represents the database structure for persisting allocation entities.
// Links to shipment via foreign key; an order line appears at most once per shipment.
type AllocationDTO struct {
	ShipmentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderLineID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity    int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for allocation entities.
// Overrides GORM's default naming convention to use "allocations".
func (AllocationDTO) TableName() string {
	return "allocations"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps all aggregate entities including allocations and the version token.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()

	var carrierID *uuid.UUID
	if id := aggregate.CarrierID(); id != nil {
		raw := id.Bytes()
		carrierID = &raw
	}

	allocations := make([]AllocationDTO, 0, len(aggregate.Allocations()))
	for _, alloc := range aggregate.Allocations() {
		allocations = append(allocations, AllocationDTO{
			ShipmentID:  shipmentID,
			OrderLineID: alloc.OrderLineID().Bytes(),
			Quantity:    alloc.Quantity(),
		})
	}

	return ShipmentDTO{
		ID:             shipmentID,
		OrderID:        aggregate.OrderID().Bytes(),
		CarrierID:      carrierID,
		TrackingNumber: aggregate.TrackingNumber(),
		Version:        aggregate.Version(),
		Allocations:    allocations,
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including allocations using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var carrierID *kernel.UUID
	if dto.CarrierID != nil {
		cID, carrierErr := kernel.UUIDFromBytes((*dto.CarrierID)[:])
		if carrierErr != nil {
			return nil, carrierErr
		}

		carrierID = &cID
	}

	allocations := make([]*shipment.Allocation, 0, len(dto.Allocations))
	for _, allocDTO := range dto.Allocations {
		lineID, lineErr := kernel.UUIDFromBytes(allocDTO.OrderLineID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		alloc, allocErr := shipment.RestoreAllocation(lineID, allocDTO.Quantity)
		if allocErr != nil {
			return nil, allocErr
		}
		allocations = append(allocations, alloc)
	}

	return shipment.RestoreShipment(id, orderID, carrierID, dto.TrackingNumber, dto.Version, allocations)
}
