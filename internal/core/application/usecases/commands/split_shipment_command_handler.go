package commands

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// SplitShipmentCommandHandler orchestrates extracting allocations from a
// source shipment into a newly created shipment of the same order. The whole
// operation is one transaction: invariants are checked before and after the
// move, the source is deleted when the split drains it completely, and no
// partial state is ever committed.
//
// Example:
//
//	handler := NewSplitShipmentCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("split failed: %w", err)
//	}
//	fmt.Printf("new shipment %s carries %d lines", created.ID, len(created.Allocations))
type SplitShipmentCommandHandler struct {
	uowFactory UoWFactory
	validator  services.AllocationValidator
}

// NewSplitShipmentCommandHandler creates a handler for split operations.
// Requires a UoWFactory for coordinating shipment and ledger reads in one
// transaction.
func NewSplitShipmentCommandHandler(uowFactory UoWFactory) SplitShipmentCommandHandler {
	return SplitShipmentCommandHandler{
		uowFactory: uowFactory,
		validator:  services.NewAllocationValidator(),
	}
}

// Handle processes the split command and returns the newly created shipment.
// A stale write detected by the store is retried once with freshly loaded
// state before the conflict is surfaced.
func (h *SplitShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd SplitShipmentCommand,
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

func (h *SplitShipmentCommandHandler) execute(
	ctx context.Context,
	cmd SplitShipmentCommand,
) (ShipmentResponse, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ShipmentResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	source, err := shipmentRepo.Get(ctx, cmd.SourceShipmentID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	if carrierID := cmd.NewCarrierID(); carrierID != nil {
		exists, carrierErr := uow.CarrierRepository().Exists(ctx, *carrierID)
		if carrierErr != nil {
			return ShipmentResponse{}, carrierErr
		}
		if !exists {
			return ShipmentResponse{}, fmt.Errorf("%w: %s", ErrUnknownCarrier, carrierID)
		}
	}

	newShipment, err := shipment.NewShipment(cmd.NewShipmentID(), source.OrderID(), cmd.NewCarrierID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	lines, err := uow.OrderLineRepository().GetForOrder(ctx, source.OrderID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	loaded, err := shipmentRepo.GetAllForOrder(ctx, source.OrderID())
	if err != nil {
		return ShipmentResponse{}, err
	}
	orderShipments := replaceShipments(loaded, source)

	if err = h.validator.Validate(lines, orderShipments); err != nil {
		return ShipmentResponse{}, err
	}

	if err = source.MoveAllocationsTo(newShipment, cmd.Selections()); err != nil {
		return ShipmentResponse{}, err
	}

	if err = h.validator.Validate(lines, append(orderShipments, newShipment)); err != nil {
		return ShipmentResponse{}, err
	}

	if err = shipmentRepo.Add(ctx, newShipment); err != nil {
		return ShipmentResponse{}, err
	}

	if source.IsEmpty() {
		if err = shipmentRepo.Delete(ctx, source); err != nil {
			return ShipmentResponse{}, err
		}
	} else if err = shipmentRepo.Update(ctx, source); err != nil {
		return ShipmentResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ShipmentResponse{}, err
	}

	return newShipmentResponse(newShipment), nil
}
