// internal/carriers/simulated/adapter.go

// Package simulated provides a scriptable carrier adapter. It implements the
// same interface as real carriers so the orchestrator and async engine are
// exercised identically in tests, local runs, and production.
package simulated

import (
	"context"
	"time"

	"rate-engine/internal/common/errors"
	"rate-engine/internal/models"
)

// Adapter returns canned rates (or a canned failure) after an optional delay.
type Adapter struct {
	CarrierName string
	Delay       time.Duration
	Rates       []models.CarrierRate
	Err         error
}

func New(name string) *Adapter {
	return &Adapter{CarrierName: name}
}

// WithDelay sets the settle delay and returns the adapter for chaining.
func (a *Adapter) WithDelay(d time.Duration) *Adapter {
	a.Delay = d
	return a
}

// WithRates sets the canned rates and returns the adapter for chaining.
func (a *Adapter) WithRates(rates ...models.CarrierRate) *Adapter {
	a.Rates = rates
	return a
}

// WithError makes every Quote call fail with err.
func (a *Adapter) WithError(err error) *Adapter {
	a.Err = err
	return a
}

func (a *Adapter) Name() string {
	return a.CarrierName
}

// Quote waits for the configured delay, then settles with the scripted
// outcome. Markup and total recomputation follow the real adapter contract.
func (a *Adapter) Quote(ctx context.Context, cfg models.CarrierConfig, req models.ShipmentRequest) ([]models.CarrierRate, error) {
	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay):
		case <-ctx.Done():
			return nil, errors.NewCarrierTimeoutError(a.CarrierName, a.Delay)
		}
	}

	if a.Err != nil {
		return nil, a.Err
	}

	if len(a.Rates) == 0 {
		return nil, errors.NewNoRatesReturnedError(a.CarrierName)
	}

	out := make([]models.CarrierRate, len(a.Rates))
	for i, r := range a.Rates {
		r.Carrier = a.CarrierName
		r.Rate.ApplyMarkup(cfg.MarkupPercent)
		out[i] = r
	}
	return out, nil
}
