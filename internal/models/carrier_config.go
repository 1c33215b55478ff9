// internal/models/carrier_config.go
package models

// Supported carrier identifiers. The set is closed; dispatch happens through
// the adapter registry, not by switching on these values.
const (
	CarrierSTG      = "stg"
	CarrierDaylight = "daylight"
	CarrierTeamWW   = "teamww"
)

// SupportedCarriers lists every carrier id an adapter can be registered for.
var SupportedCarriers = []string{CarrierSTG, CarrierDaylight, CarrierTeamWW}

// RateSource selects which rate table a carrier quotes from.
type RateSource string

const (
	RateSourceCustomerNegotiated RateSource = "customerNegotiated"
	RateSourceMasterAccount      RateSource = "masterAccount"
)

// CarrierConfig is the per-(customer, carrier) configuration record. It is
// produced by an external configuration screen and read-only to the engine.
type CarrierConfig struct {
	CarrierID     string             `json:"carrierId"`
	Enabled       bool               `json:"enabled"`
	Credentials   CarrierCredentials `json:"credentials"`
	RateSource    RateSource         `json:"rateSource"`
	MarkupPercent float64            `json:"markupPercent"` // non-negative, e.g. 10 for +10%
}

// CarrierCredentials is the carrier-specific credential blob. Carriers use
// different subsets of these fields; adapters pick what they need.
type CarrierCredentials struct {
	AccountID string `json:"accountId,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	APIKey    string `json:"apiKey,omitempty"`
}
