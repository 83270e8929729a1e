package commands

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// MergeShipmentCommandHandler orchestrates moving allocations from a source
// shipment into an existing target of the same order. The whole operation is
// one transaction: allocation invariants are checked before and after the
// move, the source is deleted when emptied, and no partial state is ever
// committed.
//
// Example:
//
//	handler := NewMergeShipmentCommandHandler(uowFactory)
//	target, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, shipment.ErrInvalidSelection) {
//	    // a pair referenced a missing line or asked for too much
//	}
type MergeShipmentCommandHandler struct {
	uowFactory UoWFactory
	validator  services.AllocationValidator
}

// NewMergeShipmentCommandHandler creates a handler for merge operations.
// Requires a UoWFactory for coordinating shipment and ledger reads in one
// transaction.
func NewMergeShipmentCommandHandler(uowFactory UoWFactory) MergeShipmentCommandHandler {
	return MergeShipmentCommandHandler{
		uowFactory: uowFactory,
		validator:  services.NewAllocationValidator(),
	}
}

// Handle processes the merge command and returns the updated target shipment.
// A stale write detected by the store is retried once with freshly loaded
// state before the conflict is surfaced.
func (h *MergeShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd MergeShipmentCommand,
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

func (h *MergeShipmentCommandHandler) execute(
	ctx context.Context,
	cmd MergeShipmentCommand,
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

	target, err := shipmentRepo.Get(ctx, cmd.TargetShipmentID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	if !source.OrderID().IsEqual(target.OrderID()) {
		return ShipmentResponse{}, shipment.ErrCrossOrderMove
	}

	lines, err := uow.OrderLineRepository().GetForOrder(ctx, source.OrderID())
	if err != nil {
		return ShipmentResponse{}, err
	}

	orderShipments, err := h.loadOrderShipments(ctx, shipmentRepo, source, target)
	if err != nil {
		return ShipmentResponse{}, err
	}

	if err = h.validator.Validate(lines, orderShipments); err != nil {
		return ShipmentResponse{}, err
	}

	if err = source.MoveAllocationsTo(target, cmd.Selections()); err != nil {
		return ShipmentResponse{}, err
	}

	if err = h.validator.Validate(lines, orderShipments); err != nil {
		return ShipmentResponse{}, err
	}

	if source.IsEmpty() {
		if err = shipmentRepo.Delete(ctx, source); err != nil {
			return ShipmentResponse{}, err
		}
	} else if err = shipmentRepo.Update(ctx, source); err != nil {
		return ShipmentResponse{}, err
	}

	if err = shipmentRepo.Update(ctx, target); err != nil {
		return ShipmentResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ShipmentResponse{}, err
	}

	return newShipmentResponse(target), nil
}

// loadOrderShipments loads every shipment of the source's order and swaps in
// the already-loaded source and target instances, so the in-memory move is
// visible to whole-order invariant validation.
func (h *MergeShipmentCommandHandler) loadOrderShipments(
	ctx context.Context,
	repo ports.ShipmentRepository,
	source, target *shipment.Shipment,
) ([]*shipment.Shipment, error) {
	loaded, err := repo.GetAllForOrder(ctx, source.OrderID())
	if err != nil {
		return nil, err
	}

	return replaceShipments(loaded, source, target), nil
}

// replaceShipments substitutes loaded shipments with the given instances,
// matched by identifier.
func replaceShipments(loaded []*shipment.Shipment, instances ...*shipment.Shipment) []*shipment.Shipment {
	byID := make(map[kernel.UUID]*shipment.Shipment, len(instances))
	for _, inst := range instances {
		byID[inst.ID()] = inst
	}

	out := make([]*shipment.Shipment, 0, len(loaded))
	for _, s := range loaded {
		if inst, ok := byID[s.ID()]; ok {
			out = append(out, inst)
			continue
		}
		out = append(out, s)
	}
	return out
}
