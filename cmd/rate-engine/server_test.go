// cmd/rate-engine/server_test.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	"rate-engine/internal/quotes"
)

const validShipment = `{
	"originZip": "60601",
	"destZip": "90001",
	"pickupDate": "2026-09-15",
	"pieces": [{"quantity": 2, "weightLbs": 150, "lengthIn": 48, "widthIn": 40, "heightIn": 36}]
}`

func cannedRate(base, fuel float64) models.CarrierRate {
	r := models.CarrierRate{Service: "LTL Standard", Rate: models.RateBreakdown{Base: base, Fuel: fuel}}
	r.Rate.Recompute()
	return r
}

func newTestServer(t *testing.T, adapters ...carriers.Adapter) (*server, *quotes.Engine) {
	t.Helper()

	configs := configstore.NewMemoryStore()
	registry := carriers.NewRegistry()
	for _, a := range adapters {
		registry.Register(a)
		cfg := models.CarrierConfig{CarrierID: a.Name(), Enabled: true}
		require.NoError(t, configs.Set(context.Background(), "cust-1", a.Name(), &cfg))
	}

	log := logger.NewNoOpLogger()
	orch := orchestrator.New(registry, configs, 500*time.Millisecond, log, nil)
	engine := quotes.NewEngine(orch, configs, quotes.NewMemoryRecordStore(), log)
	return newServer(orch, engine, errors.NewErrorHandler(log), log), engine
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAggregateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t,
		simulated.New("cheap").WithRates(cannedRate(200, 40)),
		simulated.New("pricey").WithRates(cannedRate(500, 100)),
	)
	h := srv.routes()

	rr := postJSON(t, h, "/v1/quotes/aggregate", `{"customerId":"cust-1","shipment":`+validShipment+`}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var result models.AggregationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result.Rates, 2)
	assert.Equal(t, "cheap", result.Rates[0].Carrier)
	assert.Empty(t, result.Errors)
}

func TestAggregateEndpointRejectsInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, simulated.New("a").WithRates(cannedRate(100, 20)))
	h := srv.routes()

	for name, body := range map[string]string{
		"malformed json":   `{`,
		"missing customer": `{"shipment":` + validShipment + `}`,
		"missing shipment": `{"customerId":"cust-1"}`,
		"no pieces":        `{"customerId":"cust-1","shipment":{"originZip":"60601","destZip":"90001","pickupDate":"2026-09-15","pieces":[]}}`,
		"bad pickup date":  `{"customerId":"cust-1","shipment":{"originZip":"60601","destZip":"90001","pickupDate":"tomorrow","pieces":[{"quantity":1,"weightLbs":10}]}}`,
	} {
		rr := postJSON(t, h, "/v1/quotes/aggregate", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, name)

		var stdErr errors.StandardError
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stdErr), name)
		assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code, name)
	}
}

func TestSubmitAndPollEndpoints(t *testing.T) {
	srv, engine := newTestServer(t,
		simulated.New("a").WithRates(cannedRate(100, 20)),
		simulated.New("b").WithDelay(10*time.Millisecond).WithRates(cannedRate(300, 60)),
	)
	h := srv.routes()

	rr := postJSON(t, h, "/v1/quotes", `{"customerId":"cust-1","shipment":`+validShipment+`}`)
	require.Equal(t, http.StatusAccepted, rr.Code)

	var rec models.QuoteRequestRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	require.NotEmpty(t, rec.RequestID)
	assert.Equal(t, models.StatusProcessing, rec.Status)
	assert.Equal(t, 2, rec.TotalCarriers)

	engine.Wait()

	getReq := httptest.NewRequest(http.MethodGet, "/v1/quotes/"+rec.RequestID, nil)
	getRR := httptest.NewRecorder()
	h.ServeHTTP(getRR, getReq)
	require.Equal(t, http.StatusOK, getRR.Code)

	var final models.QuoteRequestRecord
	require.NoError(t, json.Unmarshal(getRR.Body.Bytes(), &final))
	assert.Equal(t, models.StatusCompleted, final.Status)
	assert.Len(t, final.Responses, 2)
}

func TestStatusEndpointUnknownID(t *testing.T) {
	srv, _ := newTestServer(t, simulated.New("a").WithRates(cannedRate(100, 20)))
	h := srv.routes()

	req := httptest.NewRequest(http.MethodGet, "/v1/quotes/does-not-exist", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)

	var stdErr errors.StandardError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stdErr))
	assert.Equal(t, errors.ErrCodeRequestNotFound, stdErr.Code)
}
