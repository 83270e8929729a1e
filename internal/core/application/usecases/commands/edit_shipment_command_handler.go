package commands

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/ports"
)

// EditShipmentCommandHandler handles the business logic for editing a
// shipment's descriptive attributes. The carrier, when one is assigned, must
// be known to the carrier directory; quantity invariants are never involved.
//
// Example:
//
//	handler := NewEditShipmentCommandHandler(uowFactory)
//	cmd, _ := NewEditShipmentCommand(shipmentID, "TRK123", &carrierID)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrUnknownCarrier) {
//	    // carrier id not present in the directory
//	}
type EditShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewEditShipmentCommandHandler creates a handler for shipment edit operations.
// Requires a ShipmentUoWFactory for transactional persistence.
func NewEditShipmentCommandHandler(uowFactory ShipmentUoWFactory) EditShipmentCommandHandler {
	return EditShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit command inside a single transaction. A stale
// write detected by the store is retried once with freshly loaded state
// before the conflict is surfaced.
func (h *EditShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd EditShipmentCommand,
) (ShipmentResponse, error) {
	if err := cmd.Validate(); err != nil {
		return ShipmentResponse{}, err
	}

	resp, err := h.execute(ctx, cmd)
	if errors.Is(err, ports.ErrConcurrencyConflict) {
		resp, err = h.execute(ctx, cmd)
	}
	return resp, err
}

func (h *EditShipmentCommandHandler) execute(
	ctx context.Context,
	cmd EditShipmentCommand,
) (ShipmentResponse, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ShipmentResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	if carrierID := cmd.CarrierID(); carrierID != nil {
		exists, carrierErr := uow.CarrierRepository().Exists(ctx, *carrierID)
		if carrierErr != nil {
			return ShipmentResponse{}, carrierErr
		}
		if !exists {
			return ShipmentResponse{}, fmt.Errorf("%w: %s", ErrUnknownCarrier, carrierID)
		}

		if err = aggregate.AssignCarrier(*carrierID); err != nil {
			return ShipmentResponse{}, err
		}
	} else {
		aggregate.ClearCarrier()
	}

	aggregate.SetTrackingNumber(cmd.TrackingNumber())

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return ShipmentResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ShipmentResponse{}, err
	}

	return newShipmentResponse(aggregate), nil
}
