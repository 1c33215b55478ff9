// internal/models/quote_request.go
package models

import "time"

// RequestStatus is the lifecycle state of an async quote request.
type RequestStatus string

const (
	StatusProcessing RequestStatus = "processing"
	StatusCompleted  RequestStatus = "completed"
	StatusError      RequestStatus = "error"
)

// Terminal reports whether no further mutation of the record may occur.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// QuoteRequestRecord tracks one submitted shipment as carriers respond over
// time. Responses accumulate in completion order; callers match entries by
// the Carrier field, not by index.
type QuoteRequestRecord struct {
	RequestID     string                   `json:"requestId"`
	CustomerID    string                   `json:"customerId"`
	Status        RequestStatus            `json:"status"`
	CreatedAt     time.Time                `json:"createdAt"`
	ShipmentData  ShipmentRequest          `json:"shipmentData"`
	Responses     []PartialCarrierResponse `json:"responses"`
	TotalCarriers int                      `json:"totalCarriers"`
	ErrorMessage  string                   `json:"errorMessage,omitempty"`
}

// PartialCarrierResponse records one carrier's settlement, success or not.
// Each carrier contributes at most one entry per request.
type PartialCarrierResponse struct {
	Carrier   string        `json:"carrier"`
	Success   bool          `json:"success"`
	Timestamp time.Time     `json:"timestamp"`
	Rates     []CarrierRate `json:"rates,omitempty"`
	Error     string        `json:"error,omitempty"`
}
