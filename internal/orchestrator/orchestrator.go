// internal/orchestrator/orchestrator.go

// Package orchestrator fans one shipment request out to every enabled
// carrier adapter concurrently, waits for all of them to settle, and merges
// the outcomes into one sorted result.
package orchestrator

import (
	"context"
	stderrors "errors"
	"sort"
	"sync"
	"time"

	"rate-engine/internal/carriers"
	"rate-engine/internal/common/errors"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/common/metrics"
	"rate-engine/internal/common/observability"
	"rate-engine/internal/configstore"
	"rate-engine/internal/models"
)

// SettleFunc observes each carrier settlement as it lands. Called
// sequentially from the collector, never concurrently.
type SettleFunc func(carrier string, rates []models.CarrierRate, err error)

type settlement struct {
	carrier string
	rates   []models.CarrierRate
	err     error
}

type Orchestrator struct {
	registry       *carriers.Registry
	configs        configstore.Store
	carrierTimeout time.Duration
	logger         logger.Logger
	obs            *observability.Observability
}

func New(registry *carriers.Registry, configs configstore.Store, carrierTimeout time.Duration, log logger.Logger, obs *observability.Observability) *Orchestrator {
	return &Orchestrator{
		registry:       registry,
		configs:        configs,
		carrierTimeout: carrierTimeout,
		logger:         log,
		obs:            obs,
	}
}

// Aggregate quotes a shipment across every enabled carrier for a customer.
// Carrier failures are carrier-scoped entries in the result; the only Go
// error returned is a config store read failure.
func (o *Orchestrator) Aggregate(ctx context.Context, customerID string, req models.ShipmentRequest) (models.AggregationResult, error) {
	return o.AggregateWithCallback(ctx, customerID, req, nil)
}

// AggregateWithCallback is Aggregate with a per-settlement observer, used by
// the async engine to record partial responses as carriers land.
func (o *Orchestrator) AggregateWithCallback(ctx context.Context, customerID string, req models.ShipmentRequest, onSettle SettleFunc) (models.AggregationResult, error) {
	enabled, err := configstore.Enabled(ctx, o.configs, customerID)
	if err != nil {
		return models.AggregationResult{}, err
	}

	if len(enabled) == 0 {
		o.logger.Warn("no carriers configured", map[string]interface{}{"customerId": customerID})
		metrics.AggregationsTotal.WithLabelValues("no_carriers").Inc()
		return models.AggregationResult{
			Rates: []models.CarrierRate{},
			Errors: []models.CarrierError{
				{Carrier: "System", Message: errors.NewNoCarriersConfiguredError(customerID).Message},
			},
		}, nil
	}

	results := make(chan settlement, len(enabled))

	var wg sync.WaitGroup
	for carrierID, cfg := range enabled {
		wg.Add(1)
		go func(carrierID string, cfg models.CarrierConfig) {
			defer wg.Done()
			results <- o.quoteOne(ctx, carrierID, cfg, req)
		}(carrierID, cfg)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect in completion order; the callback sees settlements in the same
	// order the responses array will hold them.
	result := models.AggregationResult{
		Rates:  []models.CarrierRate{},
		Errors: []models.CarrierError{},
	}
	for s := range results {
		if onSettle != nil {
			onSettle(s.carrier, s.rates, s.err)
		}
		if s.err != nil {
			result.Errors = append(result.Errors, models.CarrierError{
				Carrier: s.carrier,
				Message: carrierErrorMessage(s.err),
			})
			continue
		}
		result.Rates = append(result.Rates, s.rates...)
	}

	// Ascending by total; stable keeps arrival order on ties.
	sort.SliceStable(result.Rates, func(i, j int) bool {
		return result.Rates[i].Rate.Total < result.Rates[j].Rate.Total
	})

	metrics.AggregationsTotal.WithLabelValues(aggregationOutcome(result)).Inc()

	o.logger.Info("aggregation complete", map[string]interface{}{
		"customerId": customerID,
		"carriers":   len(enabled),
		"rates":      len(result.Rates),
		"failures":   len(result.Errors),
	})

	return result, nil
}

// quoteOne runs a single adapter under the per-carrier timeout and captures
// its outcome. One carrier's failure never cancels its siblings.
func (o *Orchestrator) quoteOne(ctx context.Context, carrierID string, cfg models.CarrierConfig, req models.ShipmentRequest) settlement {
	adapter, ok := o.registry.Get(carrierID)
	if !ok {
		return settlement{carrier: carrierID, err: errors.NewCarrierNotRegisteredError(carrierID)}
	}

	callCtx, cancel := context.WithTimeout(ctx, o.carrierTimeout)
	defer cancel()

	start := time.Now()
	rates, err := adapter.Quote(callCtx, cfg, req)
	elapsed := time.Since(start)

	if err != nil && stderrors.Is(callCtx.Err(), context.DeadlineExceeded) {
		err = errors.NewCarrierTimeoutError(carrierID, o.carrierTimeout)
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
		o.logger.Warn("carrier quote failed", map[string]interface{}{
			"carrier": carrierID,
			"error":   err.Error(),
		})
	}

	metrics.CarrierQuotesTotal.WithLabelValues(carrierID, outcome).Inc()
	metrics.CarrierQuoteDuration.WithLabelValues(carrierID).Observe(elapsed.Seconds())
	if o.obs != nil {
		o.obs.RecordQuoteSettled(ctx, carrierID, outcome)
		o.obs.RecordQuoteDuration(ctx, carrierID, elapsed)
	}

	return settlement{carrier: carrierID, rates: rates, err: err}
}

// carrierErrorMessage extracts the human-readable message naming the carrier.
func carrierErrorMessage(err error) string {
	var se *errors.StandardError
	if stderrors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

func aggregationOutcome(result models.AggregationResult) string {
	switch {
	case len(result.Errors) == 0:
		return "success"
	case len(result.Rates) == 0:
		return "all_failed"
	default:
		return "partial"
	}
}
