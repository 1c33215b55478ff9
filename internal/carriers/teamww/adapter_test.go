// internal/carriers/teamww/adapter_test.go
package teamww

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rate-engine/internal/common/config"
	"rate-engine/internal/common/errors"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() models.CarrierConfig {
	return models.CarrierConfig{
		CarrierID: models.CarrierTeamWW,
		Enabled:   true,
		Credentials: models.CarrierCredentials{
			AccountID: "TWW-300",
			APIKey:    "key-abc",
		},
		RateSource:    models.RateSourceCustomerNegotiated,
		MarkupPercent: 8,
	}
}

func testShipment() models.ShipmentRequest {
	return models.ShipmentRequest{
		OriginAirport: "LAX",
		DestAirport:   "JFK",
		PickupDate:    "2026-10-01",
		UnitSystem:    models.UnitImperial,
		Pieces: []models.CargoPiece{
			{Quantity: 1, WeightLbs: 220, LengthIn: 40, WidthIn: 30, HeightIn: 30},
		},
		DestFlags: models.AccessorialFlags{Airport: true},
	}
}

func newServer(t *testing.T, quotes []rawQuote) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "key-abc" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var req quoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "LAX", req.OriginAirport)
		assert.Equal(t, "JFK", req.DestAirport)
		assert.Contains(t, req.Services, "ATD")
		// Metric conversion happened even though the shipment was imperial.
		require.Len(t, req.Pieces, 1)
		assert.InDelta(t, 99.79, req.Pieces[0].WeightKg, 0.01)
		_ = json.NewEncoder(w).Encode(quoteResponse{Quotes: quotes})
	}))
}

func newAdapterFor(srv *httptest.Server) *Adapter {
	return NewAdapter(config.CarrierAPIConfig{
		QuoteURL: srv.URL,
		Timeout:  5000,
	}, logger.NewNoOpLogger())
}

func TestQuote_SurchargesFoldIntoAccessorials(t *testing.T) {
	srv := newServer(t, []rawQuote{
		{
			QuoteRef:    "TWW-55",
			Product:     "Next Flight Out",
			TransitDays: 1,
			Guaranteed:  true,
			Charges:     rawCharges{AirFreight: 900, FuelSurcharge: 180, Security: 25, Handling: 35, Discount: 100},
		},
	})
	defer srv.Close()

	rates, err := newAdapterFor(srv).Quote(context.Background(), testConfig(), testShipment())
	require.NoError(t, err)
	require.Len(t, rates, 1)

	got := rates[0]
	// Security + handling fold into accessorials before markup: (25+35)*1.08.
	assert.InDelta(t, 64.8, got.Rate.Accessorials, 0.001)
	assert.InDelta(t, 900*1.08, got.Rate.Base, 0.001)
	assert.InDelta(t, 100, got.Rate.Discount, 0.001)
	assert.InDelta(t, got.Rate.Base+got.Rate.Fuel+got.Rate.Accessorials-got.Rate.Discount, got.Rate.Total, 0.001)
	assert.Equal(t, "Team Worldwide", got.Guarantor)
}

func TestQuote_MissingAPIKey(t *testing.T) {
	adapter := NewAdapter(config.CarrierAPIConfig{QuoteURL: "http://127.0.0.1:0", Timeout: 5000}, logger.NewNoOpLogger())

	cfg := testConfig()
	cfg.Credentials.APIKey = ""

	_, err := adapter.Quote(context.Background(), cfg, testShipment())
	assert.Equal(t, errors.ErrCodeCarrierAuthFailed, errors.CodeOf(err))
}

func TestQuote_EmptyRateListIsError(t *testing.T) {
	srv := newServer(t, nil)
	defer srv.Close()

	_, err := newAdapterFor(srv).Quote(context.Background(), testConfig(), testShipment())
	assert.Equal(t, errors.ErrCodeNoRatesReturned, errors.CodeOf(err))
}

func TestTranslate_GroundFlagsOmitted(t *testing.T) {
	adapter := NewAdapter(config.CarrierAPIConfig{Timeout: 5000}, logger.NewNoOpLogger())

	req := testShipment()
	req.OriginFlags = models.AccessorialFlags{Liftgate: true, Residential: true}
	req.DestFlags = models.AccessorialFlags{Appointment: true}

	payload := adapter.translate(testConfig(), req)
	// Liftgate and residential have no air freight code.
	assert.Equal(t, []string{"APT"}, payload.Services)
}
