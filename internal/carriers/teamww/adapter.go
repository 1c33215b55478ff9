// internal/carriers/teamww/adapter.go

// Package teamww integrates Team Worldwide air freight rating. TeamWW
// authenticates with a static API key per account, so there is no token
// lifecycle; requests carry the key directly.
package teamww

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"rate-engine/internal/common/config"
	"rate-engine/internal/common/errors"
	httpclient "rate-engine/internal/common/http"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/models"
	"rate-engine/internal/units"
)

// specialServiceCodes maps canonical accessorial flags to TeamWW service
// codes. Ground-only flags like liftgate have no air freight equivalent and
// are omitted.
var specialServiceCodes = map[string]string{
	"originAirport":   "ATA", // airport-to-airport pickup
	"originTradeShow": "TSO",
	"destAirport":     "ATD",
	"destAppointment": "APT",
}

type Adapter struct {
	api        config.CarrierAPIConfig
	httpClient *httpclient.Client
	logger     logger.Logger
}

func NewAdapter(api config.CarrierAPIConfig, log logger.Logger) *Adapter {
	return &Adapter{
		api:        api,
		httpClient: httpclient.NewClient(config.GetDuration(api.Timeout)),
		logger:     log.WithFields(map[string]interface{}{"carrier": models.CarrierTeamWW}),
	}
}

func (a *Adapter) Name() string {
	return models.CarrierTeamWW
}

func (a *Adapter) Quote(ctx context.Context, cfg models.CarrierConfig, req models.ShipmentRequest) ([]models.CarrierRate, error) {
	if cfg.Credentials.APIKey == "" {
		return nil, errors.NewCarrierAuthFailedError("Team Worldwide", fmt.Errorf("missing API key"))
	}

	raw, err := a.invoke(ctx, cfg.Credentials.APIKey, a.translate(cfg, req))
	if err != nil {
		return nil, errors.NewCarrierQuoteFailedError("Team Worldwide", err)
	}

	rates := a.normalize(cfg, raw)
	if len(rates) == 0 {
		return nil, errors.NewNoRatesReturnedError("Team Worldwide")
	}

	a.logger.Info("rates normalized", map[string]interface{}{
		"count":   len(rates),
		"account": cfg.Credentials.AccountID,
	})

	return rates, nil
}

func (a *Adapter) translate(cfg models.CarrierConfig, req models.ShipmentRequest) quoteRequest {
	req = units.ConvertAll(req)

	pieces := make([]piece, len(req.Pieces))
	for i, p := range req.Pieces {
		pieces[i] = piece{
			Count:     p.Quantity,
			WeightKg:  p.WeightKg,
			LengthCm:  p.LengthCm,
			WidthCm:   p.WidthCm,
			HeightCm:  p.HeightCm,
			Stackable: p.Stackable,
			Hazmat:    p.Hazmat,
		}
	}

	basis := "CONTRACT"
	if cfg.RateSource == models.RateSourceMasterAccount {
		basis = "TARIFF"
	}

	out := quoteRequest{
		Account:       cfg.Credentials.AccountID,
		RateBasis:     basis,
		OriginAirport: req.OriginAirport,
		DestAirport:   req.DestAirport,
		ReadyDate:     req.PickupDate,
		Pieces:        pieces,
		Services:      translateSpecialServices(req.OriginFlags, req.DestFlags),
	}
	if req.Insurance {
		out.InsuredValue = req.InsuranceValue
	}
	return out
}

func translateSpecialServices(origin, dest models.AccessorialFlags) []string {
	var codes []string
	add := func(flag bool, key string) {
		if !flag {
			return
		}
		if code, ok := specialServiceCodes[key]; ok {
			codes = append(codes, code)
		}
	}

	add(origin.Airport, "originAirport")
	add(origin.TradeShow, "originTradeShow")
	add(dest.Airport, "destAirport")
	add(dest.Appointment, "destAppointment")

	return codes
}

func (a *Adapter) invoke(ctx context.Context, apiKey string, payload quoteRequest) (*quoteResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.api.QuoteURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute quote request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("quote request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var quoteResp quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	return &quoteResp, nil
}

func (a *Adapter) normalize(cfg models.CarrierConfig, raw *quoteResponse) []models.CarrierRate {
	rates := make([]models.CarrierRate, 0, len(raw.Quotes))
	for _, q := range raw.Quotes {
		breakdown := models.RateBreakdown{
			Base:         q.Charges.AirFreight,
			Fuel:         q.Charges.FuelSurcharge,
			Accessorials: q.Charges.Security + q.Charges.Handling,
			Discount:     q.Charges.Discount,
		}
		breakdown.ApplyMarkup(cfg.MarkupPercent)

		rate := models.CarrierRate{
			Carrier:        models.CarrierTeamWW,
			Service:        q.Product,
			TransitDays:    q.TransitDays,
			Guaranteed:     q.Guaranteed,
			Rate:           breakdown,
			QuoteID:        q.QuoteRef,
			ExpirationDate: q.ValidTo,
			Details:        models.RateDetails{Notes: q.Remarks},
		}
		if q.Guaranteed {
			rate.Guarantor = "Team Worldwide"
		}
		rates = append(rates, rate)
	}
	return rates
}
