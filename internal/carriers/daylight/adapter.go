// internal/carriers/daylight/adapter.go

// Package daylight integrates Daylight Transport LTL rating. Daylight uses an
// OAuth-style client-credentials token endpoint and quotes imperial LTL.
package daylight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rate-engine/internal/auth"
	"rate-engine/internal/common/config"
	"rate-engine/internal/common/errors"
	httpclient "rate-engine/internal/common/http"
	"rate-engine/internal/common/logger"
	"rate-engine/internal/models"
	"rate-engine/internal/units"
)

// serviceCodes maps canonical accessorial flags to Daylight service codes.
var serviceCodes = map[string]string{
	"originLiftgate":      "LGP",
	"originResidential":   "RSP",
	"originLimitedAccess": "LAP",
	"destLiftgate":        "LGD",
	"destResidential":     "RSD",
	"destInsideDelivery":  "IDL",
	"destLimitedAccess":   "LAD",
	"destAppointment":     "NTF",
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
		logger:     log.WithFields(map[string]interface{}{"carrier": models.CarrierDaylight}),
	}
}

func (a *Adapter) Name() string {
	return models.CarrierDaylight
}

func (a *Adapter) Quote(ctx context.Context, cfg models.CarrierConfig, req models.ShipmentRequest) ([]models.CarrierRate, error) {
	token, err := a.tokens.GetOrRefresh(ctx, auth.Key{
		Carrier:   models.CarrierDaylight,
		AccountID: cfg.Credentials.AccountID,
	}, func(ctx context.Context) (auth.Token, error) {
		return a.authenticate(ctx, cfg.Credentials)
	})
	if err != nil {
		return nil, errors.NewCarrierAuthFailedError("Daylight", err)
	}

	raw, err := a.invoke(ctx, token, a.translate(cfg, req))
	if err != nil {
		return nil, errors.NewCarrierQuoteFailedError("Daylight", err)
	}

	rates := a.normalize(cfg, raw)
	if len(rates) == 0 {
		return nil, errors.NewNoRatesReturnedError("Daylight")
	}

	a.logger.Info("rates normalized", map[string]interface{}{
		"count":     len(rates),
		"accountId": cfg.Credentials.AccountID,
	})

	return rates, nil
}

func (a *Adapter) authenticate(ctx context.Context, creds models.CarrierCredentials) (auth.Token, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", creds.Username)
	data.Set("client_secret", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.api.AuthURL, strings.NewReader(data.Encode()))
	if err != nil {
		return auth.Token{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return auth.Token{}, fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return auth.Token{}, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return auth.Token{}, fmt.Errorf("failed to decode token response: %w", err)
	}

	return auth.Token{
		Value:     tokenResp.AccessToken,
		ExpiresAt: time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}

func (a *Adapter) translate(cfg models.CarrierConfig, req models.ShipmentRequest) rateRequest {
	req = units.ConvertAll(req)

	handling := make([]rateFreight, len(req.Pieces))
	for i, p := range req.Pieces {
		handling[i] = rateFreight{
			Units:     p.Quantity,
			Weight:    p.WeightLbs,
			Length:    p.LengthIn,
			Width:     p.WidthIn,
			Height:    p.HeightIn,
			Class:     p.FreightClass,
			Stackable: p.Stackable,
			Hazardous: p.Hazmat,
		}
	}

	pricing := "NEGOTIATED"
	if cfg.RateSource == models.RateSourceMasterAccount {
		pricing = "STANDARD"
	}

	return rateRequest{
		Account:      cfg.Credentials.AccountID,
		PricingLevel: pricing,
		Origin:       ratePoint{PostalCode: req.OriginZip},
		Destination:  ratePoint{PostalCode: req.DestZip},
		ShipDate:     req.PickupDate,
		Handling:     handling,
		Services:     translateServices(req.OriginFlags, req.DestFlags),
	}
}

func translateServices(origin, dest models.AccessorialFlags) []string {
	var codes []string
	add := func(flag bool, key string) {
		if !flag {
			return
		}
		if code, ok := serviceCodes[key]; ok {
			codes = append(codes, code)
		}
	}

	add(origin.Liftgate, "originLiftgate")
	add(origin.Residential, "originResidential")
	add(origin.LimitedAccess, "originLimitedAccess")
	add(dest.Liftgate, "destLiftgate")
	add(dest.Residential, "destResidential")
	add(dest.InsideDelivery, "destInsideDelivery")
	add(dest.LimitedAccess, "destLimitedAccess")
	add(dest.Appointment, "destAppointment")

	return codes
}

func (a *Adapter) invoke(ctx context.Context, token string, payload rateRequest) (*rateResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.api.QuoteURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute rate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rate request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var rateResp rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&rateResp); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}

	return &rateResp, nil
}

func (a *Adapter) normalize(cfg models.CarrierConfig, raw *rateResponse) []models.CarrierRate {
	rates := make([]models.CarrierRate, 0, len(raw.RateQuotes))
	for _, q := range raw.RateQuotes {
		breakdown := models.RateBreakdown{
			Base:         q.LineHaul,
			Fuel:         q.Fuel,
			Accessorials: q.Extras,
			Discount:     q.DiscountAmt,
		}
		breakdown.ApplyMarkup(cfg.MarkupPercent)

		rate := models.CarrierRate{
			Carrier:        models.CarrierDaylight,
			Service:        q.Service,
			TransitDays:    q.Days,
			Guaranteed:     q.IsGuaranteed,
			Rate:           breakdown,
			QuoteID:        q.ID,
			ExpirationDate: q.ValidUntil,
		}
		if q.IsGuaranteed {
			rate.Guarantor = "Daylight Transport"
		}
		if q.Remarks != "" {
			rate.Details.Notes = []string{q.Remarks}
		}
		rates = append(rates, rate)
	}
	return rates
}
