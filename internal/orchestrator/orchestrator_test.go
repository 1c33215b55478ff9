// internal/orchestrator/orchestrator_test.go
package orchestrator

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rate-engine/internal/carriers"
	"rate-engine/internal/carriers/simulated"
	"rate-engine/internal/common/errors"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/configstore"
	"rate-engine/internal/models"
)

func rateWithTotal(base, fuel float64) models.CarrierRate {
	r := models.CarrierRate{
		Service: "LTL Standard",
		Rate:    models.RateBreakdown{Base: base, Fuel: fuel},
	}
	r.Rate.Recompute()
	return r
}

func seedConfigs(t *testing.T, store configstore.Store, customerID string, cfgs ...models.CarrierConfig) {
	t.Helper()
	for _, cfg := range cfgs {
		require.NoError(t, store.Set(context.Background(), customerID, cfg.CarrierID, &cfg))
	}
}

func newOrchestrator(store configstore.Store, adapters ...carriers.Adapter) *Orchestrator {
	registry := carriers.NewRegistry()
	for _, a := range adapters {
		registry.Register(a)
	}
	return New(registry, store, 200*time.Millisecond, logger.NewNoOpLogger(), nil)
}

func TestAggregatePartialFailure(t *testing.T) {
	store := configstore.NewMemoryStore()
	seedConfigs(t, store, "cust-1",
		models.CarrierConfig{CarrierID: "fast", Enabled: true},
		models.CarrierConfig{CarrierID: "slow", Enabled: true},
		models.CarrierConfig{CarrierID: "broken", Enabled: true},
	)

	o := newOrchestrator(store,
		simulated.New("fast").WithRates(rateWithTotal(400, 80)),
		simulated.New("slow").WithDelay(20*time.Millisecond).WithRates(rateWithTotal(300, 60)),
		simulated.New("broken").WithError(errors.NewCarrierAuthFailedError("broken", stderrors.New("invalid credentials"))),
	)

	result, err := o.Aggregate(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)

	require.Len(t, result.Rates, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken", result.Errors[0].Carrier)
	assert.Contains(t, result.Errors[0].Message, "broken")

	// Cheapest first regardless of completion order.
	assert.Equal(t, "slow", result.Rates[0].Carrier)
	assert.Equal(t, 360.0, result.Rates[0].Rate.Total)
	assert.Equal(t, "fast", result.Rates[1].Carrier)
}

func TestAggregateNoCarriersConfigured(t *testing.T) {
	store := configstore.NewMemoryStore()

	o := newOrchestrator(store)

	result, err := o.Aggregate(context.Background(), "cust-none", models.ShipmentRequest{})
	require.NoError(t, err)

	assert.Empty(t, result.Rates)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "System", result.Errors[0].Carrier)
	assert.Contains(t, result.Errors[0].Message, "no carriers configured")
}

func TestAggregateSkipsDisabledCarriers(t *testing.T) {
	store := configstore.NewMemoryStore()
	seedConfigs(t, store, "cust-1",
		models.CarrierConfig{CarrierID: "on", Enabled: true, MarkupPercent: 10},
		models.CarrierConfig{CarrierID: "off", Enabled: false},
	)

	o := newOrchestrator(store,
		simulated.New("on").WithRates(rateWithTotal(400, 100)),
		simulated.New("off").WithRates(rateWithTotal(1, 0)),
	)

	result, err := o.Aggregate(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)

	require.Len(t, result.Rates, 1)
	assert.Equal(t, "on", result.Rates[0].Carrier)
	assert.Empty(t, result.Errors)

	// 10% markup on base and fuel, total recomputed.
	assert.InDelta(t, 440.0, result.Rates[0].Rate.Base, 0.001)
	assert.InDelta(t, 110.0, result.Rates[0].Rate.Fuel, 0.001)
	assert.InDelta(t, 550.0, result.Rates[0].Rate.Total, 0.001)
}

func TestAggregateUnregisteredCarrier(t *testing.T) {
	store := configstore.NewMemoryStore()
	seedConfigs(t, store, "cust-1",
		models.CarrierConfig{CarrierID: "ghost", Enabled: true},
		models.CarrierConfig{CarrierID: "real", Enabled: true},
	)

	o := newOrchestrator(store, simulated.New("real").WithRates(rateWithTotal(200, 40)))

	result, err := o.Aggregate(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)

	require.Len(t, result.Rates, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "ghost", result.Errors[0].Carrier)
}

func TestAggregateCarrierTimeout(t *testing.T) {
	store := configstore.NewMemoryStore()
	seedConfigs(t, store, "cust-1",
		models.CarrierConfig{CarrierID: "stuck", Enabled: true},
		models.CarrierConfig{CarrierID: "quick", Enabled: true},
	)

	registry := carriers.NewRegistry()
	registry.Register(simulated.New("stuck").WithDelay(5 * time.Second).WithRates(rateWithTotal(100, 20)))
	registry.Register(simulated.New("quick").WithRates(rateWithTotal(300, 60)))
	o := New(registry, store, 30*time.Millisecond, logger.NewNoOpLogger(), nil)

	result, err := o.Aggregate(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)

	// The slow carrier times out; the quick one still settles.
	require.Len(t, result.Rates, 1)
	assert.Equal(t, "quick", result.Rates[0].Carrier)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "stuck", result.Errors[0].Carrier)
	assert.Contains(t, result.Errors[0].Message, "did not respond in time")
}

func TestAggregateCallbackSeesEverySettlement(t *testing.T) {
	store := configstore.NewMemoryStore()
	seedConfigs(t, store, "cust-1",
		models.CarrierConfig{CarrierID: "a", Enabled: true},
		models.CarrierConfig{CarrierID: "b", Enabled: true},
		models.CarrierConfig{CarrierID: "c", Enabled: true},
	)

	o := newOrchestrator(store,
		simulated.New("a").WithRates(rateWithTotal(100, 20)),
		simulated.New("b").WithError(errors.NewNoRatesReturnedError("b")),
		simulated.New("c").WithDelay(10*time.Millisecond).WithRates(rateWithTotal(200, 40)),
	)

	var mu sync.Mutex
	settled := map[string]bool{}
	var failures int
	_, err := o.AggregateWithCallback(context.Background(), "cust-1", models.ShipmentRequest{}, func(carrier string, rates []models.CarrierRate, err error) {
		mu.Lock()
		defer mu.Unlock()
		settled[carrier] = true
		if err != nil {
			failures++
		}
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, settled)
	assert.Equal(t, 1, failures)
}
