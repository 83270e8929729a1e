package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrEditShipmentCommandIsNotConstructed = errors.New(
	"EditShipmentCommand must be created via NewEditShipmentCommand constructor",
)

// EditShipmentCommand represents a request to change a shipment's descriptive
// attributes: carrier and tracking number. Allocations are never touched by
// this command.
//
// Example:
//
//	cmd, err := NewEditShipmentCommand(shipmentID, "TRK123", &carrierID)
//	if err != nil {
//	    return fmt.Errorf("invalid edit request: %w", err)
//	}
//
//	handler := NewEditShipmentCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
type EditShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID     kernel.UUID
	trackingNumber string
	carrierID      *kernel.UUID

	guard guard.ConstructorGuard
}

// NewEditShipmentCommand creates a command to edit a shipment's descriptive
// fields. The tracking number may be empty, which clears it; a nil carrier ID
// clears the carrier reference.
func NewEditShipmentCommand(
	shipmentID kernel.UUID,
	trackingNumber string,
	carrierID *kernel.UUID,
) (EditShipmentCommand, error) {
	cmd := EditShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCarrierID(carrierID),
	); err != nil {
		return EditShipmentCommand{}, err
	}

	cmd.trackingNumber = trackingNumber
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditShipmentCommand) Validate() error {
	return c.guard.Validate(ErrEditShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to edit.
func (c EditShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TrackingNumber returns the tracking number to set; empty clears it.
func (c EditShipmentCommand) TrackingNumber() string {
	return c.trackingNumber
}

// CarrierID returns the carrier to assign, or nil to clear the carrier.
func (c EditShipmentCommand) CarrierID() *kernel.UUID {
	return c.carrierID
}

func (c *EditShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *EditShipmentCommand) setCarrierID(carrierID *kernel.UUID) error {
	if carrierID == nil {
		return nil
	}
	if err := carrierID.Validate(); err != nil {
		return err
	}
	c.carrierID = carrierID
	return nil
}
