package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP surface of the shipment engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	editShipmentHandler  commands.EditShipmentCommandHandler
	mergeShipmentHandler commands.MergeShipmentCommandHandler
	splitShipmentHandler commands.SplitShipmentCommandHandler

	// Query handlers
	getShipmentForEditingHandler queries.GetShipmentForEditingQueryHandler
	getMergeCandidatesHandler    queries.GetMergeCandidatesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	editShipmentHandler commands.EditShipmentCommandHandler,
	mergeShipmentHandler commands.MergeShipmentCommandHandler,
	splitShipmentHandler commands.SplitShipmentCommandHandler,
	getShipmentForEditingHandler queries.GetShipmentForEditingQueryHandler,
	getMergeCandidatesHandler queries.GetMergeCandidatesQueryHandler,
) *Server {
	return &Server{
		editShipmentHandler:          editShipmentHandler,
		mergeShipmentHandler:         mergeShipmentHandler,
		splitShipmentHandler:         splitShipmentHandler,
		getShipmentForEditingHandler: getShipmentForEditingHandler,
		getMergeCandidatesHandler:    getMergeCandidatesHandler,
	}
}

// RegisterRoutes attaches all shipment routes under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.PUT("/shipments/:shipmentID", s.EditShipment)
	api.POST("/shipments/:shipmentID/merge", s.MergeShipment)
	api.POST("/shipments/:shipmentID/split", s.SplitShipment)
	api.GET("/orders/:orderID/shipments/:shipmentID", s.GetShipmentForEditing)
	api.GET("/orders/:orderID/shipments/:shipmentID/merge-candidates", s.GetMergeCandidates)
}

// EditShipment handles PUT /api/v1/shipments/:shipmentID - updates tracking
// number and carrier assignment.
func (s *Server) EditShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	var req EditShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	carrierID, err := optionalUUID(req.CarrierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid carrier id")
	}

	cmd, err := commands.NewEditShipmentCommand(shipmentID, req.TrackingNumber, carrierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment data: "+err.Error())
	}

	response, err := s.editShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentJSON(response))
}

// MergeShipment handles POST /api/v1/shipments/:shipmentID/merge - moves
// selected quantities into an existing shipment of the same order.
func (s *Server) MergeShipment(ctx echo.Context) error {
	sourceID, err := kernel.UUIDFromString(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	var req MergeShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	targetID, err := kernel.UUIDFromString(req.TargetShipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid target shipment id")
	}

	selections, err := lineSelections(req.Selections)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid selections: "+err.Error())
	}

	cmd, err := commands.NewMergeShipmentCommand(sourceID, targetID, selections)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid merge data: "+err.Error())
	}

	response, err := s.mergeShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentJSON(response))
}

// SplitShipment handles POST /api/v1/shipments/:shipmentID/split - extracts
// selected quantities into a new shipment.
func (s *Server) SplitShipment(ctx echo.Context) error {
	sourceID, err := kernel.UUIDFromString(ctx.Param("shipmentID"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id")
	}

	var req SplitShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	newShipmentID, err := kernel.UUIDFromString(req.NewShipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid new shipment id")
	}

	newCarrierID, err := optionalUUID(req.NewCarrierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid carrier id")
	}

	selections, err := lineSelections(req.Selections)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid selections: "+err.Error())
	}

	cmd, err := commands.NewSplitShipmentCommand(sourceID, newShipmentID, selections, newCarrierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid split data: "+err.Error())
	}

	response, err := s.splitShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, shipmentJSON(response))
}

// GetShipmentForEditing handles GET /api/v1/orders/:orderID/shipments/:shipmentID -
// retrieves the editing projection of one shipment.
func (s *Server) GetShipmentForEditing(ctx echo.Context) error {
	orderID, shipmentID, err := orderAndShipmentIDs(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid identifier")
	}

	query, err := queries.NewGetShipmentForEditingQuery(orderID, shipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	response, err := s.getShipmentForEditingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorJSON(ctx, http.StatusNotFound, "Shipment not found")
		}
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve shipment")
	}

	allocations := make([]AllocationForEditing, len(response.Allocations))
	for i, alloc := range response.Allocations {
		allocations[i] = AllocationForEditing{
			OrderLineID:     alloc.OrderLineID.String(),
			ProductID:       alloc.ProductID.String(),
			Quantity:        alloc.Quantity,
			OrderedQuantity: alloc.OrderedQuantity,
		}
	}

	return ctx.JSON(http.StatusOK, ShipmentForEditing{
		ID:             response.ID.String(),
		OrderID:        response.OrderID.String(),
		CarrierID:      uuidString(response.CarrierID),
		TrackingNumber: response.TrackingNumber,
		Allocations:    allocations,
	})
}

// GetMergeCandidates handles GET /api/v1/orders/:orderID/shipments/:shipmentID/merge-candidates -
// lists the order's other shipments a merge could target.
func (s *Server) GetMergeCandidates(ctx echo.Context) error {
	orderID, shipmentID, err := orderAndShipmentIDs(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid identifier")
	}

	query, err := queries.NewGetMergeCandidatesQuery(orderID, shipmentID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	candidates, err := s.getMergeCandidatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve merge candidates")
	}

	response := make([]MergeCandidate, len(candidates))
	for i, candidate := range candidates {
		response[i] = MergeCandidate{
			ID:             candidate.ID.String(),
			CarrierID:      uuidString(candidate.CarrierID),
			TrackingNumber: candidate.TrackingNumber,
			AllocationSum:  candidate.AllocationSum,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func orderAndShipmentIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, shipmentID, nil
}

func optionalUUID(value *string) (*kernel.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}

func lineSelections(requested []LineSelectionRequest) ([]shipment.LineSelection, error) {
	selections := make([]shipment.LineSelection, len(requested))
	for i, sel := range requested {
		lineID, err := kernel.UUIDFromString(sel.OrderLineID)
		if err != nil {
			return nil, err
		}
		selection, err := shipment.NewLineSelection(lineID, sel.Quantity)
		if err != nil {
			return nil, err
		}
		selections[i] = selection
	}
	return selections, nil
}

func shipmentJSON(response commands.ShipmentResponse) ShipmentView {
	allocations := make([]AllocationView, len(response.Allocations))
	for i, alloc := range response.Allocations {
		allocations[i] = AllocationView{
			OrderLineID: alloc.OrderLineID.String(),
			Quantity:    alloc.Quantity,
		}
	}

	return ShipmentView{
		ID:             response.ID.String(),
		OrderID:        response.OrderID.String(),
		CarrierID:      uuidString(response.CarrierID),
		TrackingNumber: response.TrackingNumber,
		Allocations:    allocations,
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

// commandErrorJSON maps command handler failures onto HTTP statuses: missing
// aggregates are 404, rule violations are 422, lost optimistic-concurrency
// races are 409, everything else is 500.
func commandErrorJSON(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, shipment.ErrInvalidSelection),
		errors.Is(err, shipment.ErrCrossOrderMove),
		errors.Is(err, shipment.ErrSameShipmentMove),
		errors.Is(err, commands.ErrUnknownCarrier):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ports.ErrConcurrencyConflict):
		return errorJSON(ctx, http.StatusConflict, "Shipment was modified concurrently, please retry")
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to process shipment")
	}
}
