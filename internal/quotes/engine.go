// internal/quotes/engine.go
package quotes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rate-engine/internal/common/logger"
	"rate-engine/internal/common/metrics"
	"rate-engine/internal/configstore"
	"rate-engine/internal/models"
	"rate-engine/internal/orchestrator"
)

// Engine runs the submit/poll lifecycle. Submit snapshots the enabled
// carriers, writes a processing record, and returns immediately; a background
// fan-out appends one response per carrier as each settles. Poll via Status.
type Engine struct {
	orch    *orchestrator.Orchestrator
	configs configstore.Store
	records RecordStore
	logger  logger.Logger
	now     func() time.Time

	wg sync.WaitGroup
}

func NewEngine(orch *orchestrator.Orchestrator, configs configstore.Store, records RecordStore, log logger.Logger) *Engine {
	return &Engine{
		orch:    orch,
		configs: configs,
		records: records,
		logger:  log,
		now:     time.Now,
	}
}

// Submit registers the request and starts the carrier fan-out in the
// background. The returned record is always in a valid pollable state: either
// processing, or already terminal when nothing could be dispatched.
func (e *Engine) Submit(ctx context.Context, customerID string, req models.ShipmentRequest) (*models.QuoteRequestRecord, error) {
	enabled, err := configstore.Enabled(ctx, e.configs, customerID)
	if err != nil {
		return nil, err
	}

	rec := &models.QuoteRequestRecord{
		RequestID:     uuid.New().String(),
		CustomerID:    customerID,
		Status:        models.StatusProcessing,
		CreatedAt:     e.now().UTC(),
		ShipmentData:  req,
		Responses:     []models.PartialCarrierResponse{},
		TotalCarriers: len(enabled),
	}

	if len(enabled) == 0 {
		rec.Status = models.StatusError
		rec.ErrorMessage = "no carriers configured"
		if err := e.records.Save(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}

	if err := e.records.Save(ctx, rec); err != nil {
		return nil, err
	}

	metrics.AsyncRequestsActive.Inc()
	e.wg.Add(1)
	// Detach from the HTTP request context; the fan-out outlives the submit
	// call by design.
	bgCtx := context.WithoutCancel(ctx)
	go e.run(bgCtx, rec.RequestID, customerID, req)

	e.logger.Info("quote request submitted", map[string]interface{}{
		"requestId":  rec.RequestID,
		"customerId": customerID,
		"carriers":   rec.TotalCarriers,
	})

	return rec, nil
}

// Status returns the current record for requestID. Unknown ids produce the
// distinct not-found error so callers can tell "never existed" from
// "still processing".
func (e *Engine) Status(ctx context.Context, requestID string) (*models.QuoteRequestRecord, error) {
	return e.records.Get(ctx, requestID)
}

// Wait blocks until all in-flight background fan-outs finish. Used by
// graceful shutdown and tests.
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) run(ctx context.Context, requestID, customerID string, req models.ShipmentRequest) {
	defer e.wg.Done()
	defer metrics.AsyncRequestsActive.Dec()

	_, err := e.orch.AggregateWithCallback(ctx, customerID, req, func(carrier string, rates []models.CarrierRate, settleErr error) {
		e.appendResponse(ctx, requestID, carrier, rates, settleErr)
	})
	if err != nil {
		// Orchestration-level failure, not a carrier failure: the record goes
		// terminal with the error message so pollers are never stuck.
		e.logger.Error("aggregation failed", map[string]interface{}{
			"requestId": requestID,
			"error":     err.Error(),
		})
		e.markError(ctx, requestID, err.Error())
		return
	}
	e.finalize(ctx, requestID)
}

// finalize closes the record after the fan-out returns. Normally the last
// appendResponse already completed it; this covers the snapshot drifting from
// the live config between submit and dispatch.
func (e *Engine) finalize(ctx context.Context, requestID string) {
	rec, err := e.records.Get(ctx, requestID)
	if err != nil || rec.Status.Terminal() {
		return
	}
	rec.Status = models.StatusCompleted
	if err := e.records.Save(ctx, rec); err != nil {
		e.logger.Error("record save failed", map[string]interface{}{
			"requestId": requestID,
			"error":     err.Error(),
		})
	}
}

// appendResponse records one settlement. Callbacks arrive sequentially per
// request, so load-modify-save needs no cross-request coordination.
func (e *Engine) appendResponse(ctx context.Context, requestID, carrier string, rates []models.CarrierRate, settleErr error) {
	rec, err := e.records.Get(ctx, requestID)
	if err != nil {
		e.logger.Error("record load failed", map[string]interface{}{
			"requestId": requestID,
			"error":     err.Error(),
		})
		return
	}
	if rec.Status.Terminal() {
		return
	}

	resp := models.PartialCarrierResponse{
		Carrier:   carrier,
		Success:   settleErr == nil,
		Timestamp: e.now().UTC(),
		Rates:     rates,
	}
	if settleErr != nil {
		resp.Error = settleErr.Error()
	}
	rec.Responses = append(rec.Responses, resp)

	// Completed means every carrier settled, even when every one of them
	// failed; per-carrier outcomes live in the responses themselves.
	if len(rec.Responses) >= rec.TotalCarriers {
		rec.Status = models.StatusCompleted
	}

	if err := e.records.Save(ctx, rec); err != nil {
		e.logger.Error("record save failed", map[string]interface{}{
			"requestId": requestID,
			"error":     err.Error(),
		})
	}
}

func (e *Engine) markError(ctx context.Context, requestID, msg string) {
	rec, err := e.records.Get(ctx, requestID)
	if err != nil {
		return
	}
	if rec.Status.Terminal() {
		return
	}
	rec.Status = models.StatusError
	rec.ErrorMessage = msg
	if err := e.records.Save(ctx, rec); err != nil {
		e.logger.Error("record save failed", map[string]interface{}{
			"requestId": requestID,
			"error":     err.Error(),
		})
	}
}
