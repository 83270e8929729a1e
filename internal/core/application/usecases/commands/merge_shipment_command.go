package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrMergeShipmentCommandIsNotConstructed = errors.New(
	"MergeShipmentCommand must be created via NewMergeShipmentCommand constructor",
)

// MergeShipmentCommand represents a request to move selected line quantities
// from a source shipment into an existing target shipment of the same order.
// A source emptied by the merge is deleted as part of the operation.
//
// Example:
//
//	sel, _ := shipment.NewLineSelection(lineID, 6)
//	cmd, err := NewMergeShipmentCommand(sourceID, targetID, []shipment.LineSelection{sel})
//	if err != nil {
//	    return fmt.Errorf("invalid merge request: %w", err)
//	}
//
//	handler := NewMergeShipmentCommandHandler(uowFactory)
//	target, err := handler.Handle(ctx, cmd)
type MergeShipmentCommand struct { //nolint:recvcheck //using for validation
	sourceShipmentID kernel.UUID
	targetShipmentID kernel.UUID
	selections       []shipment.LineSelection

	guard guard.ConstructorGuard
}

// NewMergeShipmentCommand creates a merge command with validation. Source and
// target must be distinct valid identifiers and the selection list must be
// non-empty with no duplicate order lines.
func NewMergeShipmentCommand(
	sourceShipmentID, targetShipmentID kernel.UUID,
	selections []shipment.LineSelection,
) (MergeShipmentCommand, error) {
	cmd := MergeShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSourceShipmentID(sourceShipmentID),
		cmd.setTargetShipmentID(targetShipmentID),
		cmd.setSelections(selections),
	); err != nil {
		return MergeShipmentCommand{}, err
	}

	if sourceShipmentID.IsEqual(targetShipmentID) {
		return MergeShipmentCommand{}, shipment.ErrSameShipmentMove
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MergeShipmentCommand) Validate() error {
	return c.guard.Validate(ErrMergeShipmentCommandIsNotConstructed)
}

// SourceShipmentID returns the shipment the quantities are moved out of.
func (c MergeShipmentCommand) SourceShipmentID() kernel.UUID {
	return c.sourceShipmentID
}

// TargetShipmentID returns the shipment the quantities are moved into.
func (c MergeShipmentCommand) TargetShipmentID() kernel.UUID {
	return c.targetShipmentID
}

// Selections returns the line/quantity pairs to move.
func (c MergeShipmentCommand) Selections() []shipment.LineSelection {
	return c.selections
}

func (c *MergeShipmentCommand) setSourceShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.sourceShipmentID = id
	return nil
}

func (c *MergeShipmentCommand) setTargetShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.targetShipmentID = id
	return nil
}

func (c *MergeShipmentCommand) setSelections(selections []shipment.LineSelection) error {
	if err := shipment.ValidateLineSelections(selections); err != nil {
		return err
	}
	c.selections = selections
	return nil
}
