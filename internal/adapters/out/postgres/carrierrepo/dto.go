// Package carrierrepo provides the read-side adapter to the carrier directory.
// The reconciliation engine only checks carrier existence; carrier management
// is owned by another system writing to the same table.
package carrierrepo

import (
	"github.com/google/uuid"
)

// CarrierDTO represents the database structure for carrier directory entries.
type CarrierDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for carrier entities.
// Overrides GORM's default naming convention to use "carriers".
func (CarrierDTO) TableName() string {
	return "carriers"
}
