// internal/carriers/stg/adapter.go

// Package stg integrates STG Logistics LTL rating. STG authenticates with a
// JSON credential payload and quotes from either the customer-negotiated or
// master rate table, in imperial units.
package stg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rate-engine/internal/auth"
	"rate-engine/internal/common/config"
	"rate-engine/internal/common/errors"
	httpclient "rate-engine/internal/common/http"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/models"
	"rate-engine/internal/units"
)

// accessorialCodes maps canonical flags to STG service codes. Flags without
// an entry are omitted from the payload.
var accessorialCodes = map[string]string{
	"originLiftgate":      "LGPU",
	"originResidential":   "RESP",
	"originInsidePickup":  "INPU",
	"originLimitedAccess": "LAPU",
	"originTradeShow":     "TRDP",
	"destLiftgate":        "LGDL",
	"destResidential":     "RESD",
	"destInsideDelivery":  "INDL",
	"destLimitedAccess":   "LADL",
	"destAppointment":     "APPT",
}

type Adapter struct {
	api        config.CarrierAPIConfig
	tokens     *auth.TokenCache
	httpClient *httpclient.Client
	logger     logger.Logger
}

func NewAdapter(api config.CarrierAPIConfig, tokens *auth.TokenCache, log logger.Logger) *Adapter {
	return &Adapter{
		api:        api,
		tokens:     tokens,
		httpClient: httpclient.NewClient(config.GetDuration(api.Timeout)),
		logger:     log.WithFields(map[string]interface{}{"carrier": models.CarrierSTG}),
	}
}

func (a *Adapter) Name() string {
	return models.CarrierSTG
}

// Quote runs the full STG round trip: token, translate, rate, normalize.
func (a *Adapter) Quote(ctx context.Context, cfg models.CarrierConfig, req models.ShipmentRequest) ([]models.CarrierRate, error) {
	token, err := a.tokens.GetOrRefresh(ctx, auth.Key{
		Carrier:   models.CarrierSTG,
		AccountID: cfg.Credentials.AccountID,
	}, func(ctx context.Context) (auth.Token, error) {
		return a.authenticate(ctx, cfg.Credentials)
	})
	if err != nil {
		return nil, errors.NewCarrierAuthFailedError("STG", err)
	}

	payload := a.translate(cfg, req)

	raw, err := a.invoke(ctx, token, payload)
	if err != nil {
		return nil, errors.NewCarrierQuoteFailedError("STG", err)
	}

	rates := a.normalize(cfg, raw)
	if len(rates) == 0 {
		return nil, errors.NewNoRatesReturnedError("STG")
	}

	a.logger.Info("rates normalized", map[string]interface{}{
		"count":     len(rates),
		"accountId": cfg.Credentials.AccountID,
	})

	return rates, nil
}

// authenticate performs a fresh token call against STG.
func (a *Adapter) authenticate(ctx context.Context, creds models.CarrierCredentials) (auth.Token, error) {
	body, err := json.Marshal(authRequest{
		AccountID: creds.AccountID,
		Username:  creds.Username,
		Password:  creds.Password,
	})
	if err != nil {
		return auth.Token{}, fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.api.AuthURL, bytes.NewBuffer(body))
	if err != nil {
		return auth.Token{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return auth.Token{}, fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return auth.Token{}, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var tokenResp authResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return auth.Token{}, fmt.Errorf("failed to decode token response: %w", err)
	}

	return auth.Token{
		Value:     tokenResp.AccessToken,
		ExpiresAt: time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}

// translate maps the canonical request into STG's payload.
func (a *Adapter) translate(cfg models.CarrierConfig, req models.ShipmentRequest) quoteRequest {
	req = units.ConvertAll(req)

	items := make([]quoteItem, len(req.Pieces))
	for i, p := range req.Pieces {
		items[i] = quoteItem{
			Pieces:       p.Quantity,
			WeightLbs:    p.WeightLbs,
			LengthIn:     p.LengthIn,
			WidthIn:      p.WidthIn,
			HeightIn:     p.HeightIn,
			FreightClass: p.FreightClass,
			Packaging:    p.PackagingType,
			Stackable:    p.Stackable,
			Hazmat:       p.Hazmat,
		}
	}

	rateTable := "CUSTOMER"
	if cfg.RateSource == models.RateSourceMasterAccount {
		rateTable = "MASTER"
	}

	out := quoteRequest{
		AccountID:    cfg.Credentials.AccountID,
		RateTable:    rateTable,
		OriginZip:    req.OriginZip,
		DestZip:      req.DestZip,
		PickupDate:   req.PickupDate,
		Items:        items,
		Accessorials: translateAccessorials(req.OriginFlags, req.DestFlags),
	}
	if req.Insurance {
		out.Insurance = req.InsuranceValue
	}
	return out
}

func translateAccessorials(origin, dest models.AccessorialFlags) []string {
	var codes []string
	add := func(flag bool, key string) {
		if !flag {
			return
		}
		if code, ok := accessorialCodes[key]; ok {
			codes = append(codes, code)
		}
	}

	add(origin.Liftgate, "originLiftgate")
	add(origin.Residential, "originResidential")
	add(origin.InsidePickup, "originInsidePickup")
	add(origin.LimitedAccess, "originLimitedAccess")
	add(origin.TradeShow, "originTradeShow")
	add(dest.Liftgate, "destLiftgate")
	add(dest.Residential, "destResidential")
	add(dest.InsideDelivery, "destInsideDelivery")
	add(dest.LimitedAccess, "destLimitedAccess")
	add(dest.Appointment, "destAppointment")

	return codes
}

// invoke calls STG's rating endpoint with the translated payload.
func (a *Adapter) invoke(ctx context.Context, token string, payload quoteRequest) (*quoteResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.api.QuoteURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

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

// normalize converts STG's raw quotes into canonical rates, applying markup
// and recomputing totals from the marked-up components.
func (a *Adapter) normalize(cfg models.CarrierConfig, raw *quoteResponse) []models.CarrierRate {
	rates := make([]models.CarrierRate, 0, len(raw.Quotes))
	for _, q := range raw.Quotes {
		breakdown := models.RateBreakdown{
			Base:         q.Charges.Freight,
			Fuel:         q.Charges.FuelSurcharge,
			Accessorials: q.Charges.Accessorials,
			Discount:     q.Charges.Discount,
		}
		breakdown.ApplyMarkup(cfg.MarkupPercent)

		rate := models.CarrierRate{
			Carrier:        models.CarrierSTG,
			Service:        q.ServiceLevel,
			TransitDays:    q.TransitDays,
			Guaranteed:     q.Guaranteed,
			Rate:           breakdown,
			QuoteID:        q.QuoteNumber,
			ExpirationDate: q.Expires,
			Details:        models.RateDetails{Notes: q.Notes},
		}
		if q.Guaranteed {
			rate.Guarantor = "STG Logistics"
		}
		rates = append(rates, rate)
	}
	return rates
}
