// internal/quotes/engine_test.go
package quotes

import (
	"context"
	stderrors "errors"
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
	"rate-engine/internal/orchestrator"
)

func plainRate(base, fuel float64) models.CarrierRate {
	r := models.CarrierRate{Rate: models.RateBreakdown{Base: base, Fuel: fuel}}
	r.Rate.Recompute()
	return r
}

func newTestEngine(t *testing.T, records RecordStore, adapters ...carriers.Adapter) *Engine {
	t.Helper()

	configs := configstore.NewMemoryStore()
	registry := carriers.NewRegistry()
	for _, a := range adapters {
		registry.Register(a)
		cfg := models.CarrierConfig{CarrierID: a.Name(), Enabled: true}
		require.NoError(t, configs.Set(context.Background(), "cust-1", a.Name(), &cfg))
	}

	orch := orchestrator.New(registry, configs, 500*time.Millisecond, logger.NewNoOpLogger(), nil)
	return NewEngine(orch, configs, records, logger.NewNoOpLogger())
}

func TestSubmitCompletesWithAllResponses(t *testing.T) {
	engine := newTestEngine(t, NewMemoryRecordStore(),
		simulated.New("fast").WithRates(plainRate(100, 20)),
		simulated.New("slow").WithDelay(15*time.Millisecond).WithRates(plainRate(200, 40)),
	)

	rec, err := engine.Submit(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, rec.RequestID)
	assert.Equal(t, models.StatusProcessing, rec.Status)
	assert.Equal(t, 2, rec.TotalCarriers)

	engine.Wait()

	final, err := engine.Status(context.Background(), rec.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, final.Status)
	require.Len(t, final.Responses, 2)

	// Responses accumulate in completion order.
	assert.Equal(t, "fast", final.Responses[0].Carrier)
	assert.True(t, final.Responses[0].Success)
	assert.Equal(t, "slow", final.Responses[1].Carrier)
	require.Len(t, final.Responses[1].Rates, 1)
	assert.Equal(t, 240.0, final.Responses[1].Rates[0].Rate.Total)
}

func TestSubmitCompletedEvenWhenEveryCarrierFails(t *testing.T) {
	engine := newTestEngine(t, NewMemoryRecordStore(),
		simulated.New("a").WithError(errors.NewCarrierAuthFailedError("a", stderrors.New("bad token"))),
		simulated.New("b").WithError(errors.NewNoRatesReturnedError("b")),
	)

	rec, err := engine.Submit(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)
	engine.Wait()

	final, err := engine.Status(context.Background(), rec.RequestID)
	require.NoError(t, err)

	// Completed, not error: every carrier settled, the outcomes just happen
	// to be failures.
	assert.Equal(t, models.StatusCompleted, final.Status)
	require.Len(t, final.Responses, 2)
	for _, resp := range final.Responses {
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	}
	assert.Empty(t, final.ErrorMessage)
}

func TestSubmitNoCarriersConfigured(t *testing.T) {
	engine := newTestEngine(t, NewMemoryRecordStore())

	rec, err := engine.Submit(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusError, rec.Status)
	assert.Equal(t, 0, rec.TotalCarriers)
	assert.Contains(t, rec.ErrorMessage, "no carriers configured")

	// The terminal record is still poll-able.
	final, err := engine.Status(context.Background(), rec.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, final.Status)
}

func TestStatusUnknownRequestID(t *testing.T) {
	engine := newTestEngine(t, NewMemoryRecordStore(),
		simulated.New("a").WithRates(plainRate(100, 20)))

	_, err := engine.Status(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestPollWhileProcessing(t *testing.T) {
	engine := newTestEngine(t, NewMemoryRecordStore(),
		simulated.New("fast").WithRates(plainRate(100, 20)),
		simulated.New("stuck").WithDelay(300*time.Millisecond).WithRates(plainRate(200, 40)),
	)

	rec, err := engine.Submit(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)

	// The fast carrier settles well before the stuck one; a poll in between
	// sees a partial, still-processing record.
	deadline := time.Now().Add(2 * time.Second)
	var mid *models.QuoteRequestRecord
	for time.Now().Before(deadline) {
		mid, err = engine.Status(context.Background(), rec.RequestID)
		require.NoError(t, err)
		if len(mid.Responses) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.NotNil(t, mid)
	require.NotEmpty(t, mid.Responses)
	if len(mid.Responses) < mid.TotalCarriers {
		assert.Equal(t, models.StatusProcessing, mid.Status)
	}

	engine.Wait()

	final, err := engine.Status(context.Background(), rec.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, final.Status)
	require.Len(t, final.Responses, 2)
}

func TestTerminalRecordIsImmutable(t *testing.T) {
	store := NewMemoryRecordStore()
	engine := newTestEngine(t, store, simulated.New("a").WithRates(plainRate(100, 20)))

	rec, err := engine.Submit(context.Background(), "cust-1", models.ShipmentRequest{})
	require.NoError(t, err)
	engine.Wait()

	final, err := engine.Status(context.Background(), rec.RequestID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, final.Status)

	// A late settlement against a terminal record is dropped.
	engine.appendResponse(context.Background(), rec.RequestID, "late", nil, stderrors.New("stale"))

	after, err := engine.Status(context.Background(), rec.RequestID)
	require.NoError(t, err)
	assert.Equal(t, final.Responses, after.Responses)
	assert.Equal(t, models.StatusCompleted, after.Status)
}
