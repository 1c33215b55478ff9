// internal/carriers/adapter.go

// Package carriers defines the adapter interface every carrier integration
// implements and the registry the orchestrator dispatches through.
package carriers

import (
	"context"

	"rate-engine/internal/models"
)

// Adapter is the contract for one carrier integration. Quote owns the whole
// carrier round trip: authentication, payload translation, the quoting call,
// and normalization back into CarrierRate entries with markup applied.
//
// An empty rate list is an error, never a success: a carrier that quotes
// nothing must surface in the aggregation errors, not vanish silently.
type Adapter interface {
	Name() string
	Quote(ctx context.Context, cfg models.CarrierConfig, req models.ShipmentRequest) ([]models.CarrierRate, error)
}
