package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrSplitShipmentCommandIsNotConstructed = errors.New(
	"SplitShipmentCommand must be created via NewSplitShipmentCommand constructor",
)

// SplitShipmentCommand represents a request to extract selected line
// quantities from a source shipment into a brand-new shipment of the same
// order, optionally assigning a carrier to the new shipment. Selecting all
// lines at their full quantities is permitted and leaves the source empty,
// in which case it is deleted.
//
// The caller supplies the identifier for the new shipment, keeping the
// handler deterministic.
//
// Example:
//
//	sel, _ := shipment.NewLineSelection(lineID, 4)
//	cmd, err := NewSplitShipmentCommand(sourceID, kernel.NewUUID(),
//	    []shipment.LineSelection{sel}, &carrierID)
//	if err != nil {
//	    return fmt.Errorf("invalid split request: %w", err)
//	}
type SplitShipmentCommand struct { //nolint:recvcheck //using for validation
	sourceShipmentID kernel.UUID
	newShipmentID    kernel.UUID
	selections       []shipment.LineSelection
	newCarrierID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSplitShipmentCommand creates a split command with validation. The
// selection list must be non-empty with no duplicate order lines; the new
// shipment id must differ from the source.
func NewSplitShipmentCommand(
	sourceShipmentID, newShipmentID kernel.UUID,
	selections []shipment.LineSelection,
	newCarrierID *kernel.UUID,
) (SplitShipmentCommand, error) {
	cmd := SplitShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSourceShipmentID(sourceShipmentID),
		cmd.setNewShipmentID(newShipmentID),
		cmd.setSelections(selections),
		cmd.setNewCarrierID(newCarrierID),
	); err != nil {
		return SplitShipmentCommand{}, err
	}

	if sourceShipmentID.IsEqual(newShipmentID) {
		return SplitShipmentCommand{}, shipment.ErrSameShipmentMove
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitShipmentCommand) Validate() error {
	return c.guard.Validate(ErrSplitShipmentCommandIsNotConstructed)
}

// SourceShipmentID returns the shipment the quantities are extracted from.
func (c SplitShipmentCommand) SourceShipmentID() kernel.UUID {
	return c.sourceShipmentID
}

// NewShipmentID returns the identifier the new shipment will be created with.
func (c SplitShipmentCommand) NewShipmentID() kernel.UUID {
	return c.newShipmentID
}

// Selections returns the line/quantity pairs to extract.
func (c SplitShipmentCommand) Selections() []shipment.LineSelection {
	return c.selections
}

// NewCarrierID returns the carrier for the new shipment, or nil for none.
func (c SplitShipmentCommand) NewCarrierID() *kernel.UUID {
	return c.newCarrierID
}

func (c *SplitShipmentCommand) setSourceShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.sourceShipmentID = id
	return nil
}

func (c *SplitShipmentCommand) setNewShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.newShipmentID = id
	return nil
}

func (c *SplitShipmentCommand) setSelections(selections []shipment.LineSelection) error {
	if err := shipment.ValidateLineSelections(selections); err != nil {
		return err
	}
	c.selections = selections
	return nil
}

func (c *SplitShipmentCommand) setNewCarrierID(carrierID *kernel.UUID) error {
	if carrierID == nil {
		return nil
	}
	if err := carrierID.Validate(); err != nil {
		return err
	}
	c.newCarrierID = carrierID
	return nil
}
