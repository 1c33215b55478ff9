// internal/configstore/store.go

// Package configstore holds per-customer carrier configuration. Records are
// written by an external configuration screen and read-only to the engine;
// the backing store is an injected dependency.
package configstore

import (
	"context"

	"rate-engine/internal/models"
)

// Store maps customers to their carrier configurations.
type Store interface {
	// Get returns every config for a customer, keyed by carrier id.
	Get(ctx context.Context, customerID string) (map[string]models.CarrierConfig, error)

	// Set creates or updates one (customer, carrier) record. A nil config
	// removes the entry.
	Set(ctx context.Context, customerID, carrierID string, cfg *models.CarrierConfig) error
}

// Enabled returns only the enabled configs for a customer. Enablement is
// filtered here, once, so the orchestrator never sees disabled carriers.
func Enabled(ctx context.Context, s Store, customerID string) (map[string]models.CarrierConfig, error) {
	all, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	enabled := make(map[string]models.CarrierConfig)
	for id, cfg := range all {
		if cfg.Enabled {
			enabled[id] = cfg
		}
	}
	return enabled, nil
}
