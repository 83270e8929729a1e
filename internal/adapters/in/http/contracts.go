package http

// EditShipmentRequest is the body of PUT /api/v1/shipments/:shipmentID.
// An absent or empty carrier id clears the carrier; an empty tracking
// number clears the tracking number.
type EditShipmentRequest struct {
	TrackingNumber string  `json:"trackingNumber"`
	CarrierID      *string `json:"carrierId,omitempty"`
}

// MergeShipmentRequest is the body of POST /api/v1/shipments/:shipmentID/merge.
type MergeShipmentRequest struct {
	TargetShipmentID string                 `json:"targetShipmentId"`
	Selections       []LineSelectionRequest `json:"selections"`
}

// SplitShipmentRequest is the body of POST /api/v1/shipments/:shipmentID/split.
// The caller supplies the id the new shipment is created with.
type SplitShipmentRequest struct {
	NewShipmentID string                 `json:"newShipmentId"`
	NewCarrierID  *string                `json:"newCarrierId,omitempty"`
	Selections    []LineSelectionRequest `json:"selections"`
}

// LineSelectionRequest names one order line and the quantity to move.
type LineSelectionRequest struct {
	OrderLineID string `json:"orderLineId"`
	Quantity    int    `json:"quantity"`
}

// ShipmentView is the projection of a shipment returned by command endpoints.
type ShipmentView struct {
	ID             string           `json:"id"`
	OrderID        string           `json:"orderId"`
	CarrierID      *string          `json:"carrierId,omitempty"`
	TrackingNumber string           `json:"trackingNumber"`
	Allocations    []AllocationView `json:"allocations"`
}

// AllocationView is one line allocation within a ShipmentView.
type AllocationView struct {
	OrderLineID string `json:"orderLineId"`
	Quantity    int    `json:"quantity"`
}

// ShipmentForEditing is the read model returned by the editing endpoint.
type ShipmentForEditing struct {
	ID             string                 `json:"id"`
	OrderID        string                 `json:"orderId"`
	CarrierID      *string                `json:"carrierId,omitempty"`
	TrackingNumber string                 `json:"trackingNumber"`
	Allocations    []AllocationForEditing `json:"allocations"`
}

// AllocationForEditing pairs an allocated quantity with the line's ordered
// quantity so a client can compute the movable remainder.
type AllocationForEditing struct {
	OrderLineID     string `json:"orderLineId"`
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity"`
	OrderedQuantity int    `json:"orderedQuantity"`
}

// MergeCandidate describes one shipment of the order a merge could target.
type MergeCandidate struct {
	ID             string  `json:"id"`
	CarrierID      *string `json:"carrierId,omitempty"`
	TrackingNumber string  `json:"trackingNumber"`
	AllocationSum  int     `json:"allocationSum"`
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
