// internal/models/shipment.go
package models

// UnitSystem identifies which measurement system a shipment was entered in.
type UnitSystem string

const (
	UnitImperial UnitSystem = "imperial"
	UnitMetric   UnitSystem = "metric"
)

// ShipmentRequest is the canonical, carrier-agnostic shipment description.
// It arrives pre-validated for required fields from the quote-entry layer;
// at least one piece must have a positive weight.
type ShipmentRequest struct {
	OriginZip       string           `json:"originZip,omitempty"`
	OriginAirport   string           `json:"originAirport,omitempty"`
	DestZip         string           `json:"destZip,omitempty"`
	DestAirport     string           `json:"destAirport,omitempty"`
	PickupDate      string           `json:"pickupDate"` // YYYY-MM-DD
	Pieces          []CargoPiece     `json:"pieces"`
	OriginFlags     AccessorialFlags `json:"originFlags"`
	DestFlags       AccessorialFlags `json:"destFlags"`
	UnitSystem      UnitSystem       `json:"unitSystem"`
	Insurance       bool             `json:"insurance"`
	InsuranceValue  float64          `json:"insuranceValue,omitempty"`
	DeclaredValue   float64          `json:"declaredValue,omitempty"`
	SpecialHandling string           `json:"specialHandling,omitempty"`
}

// CargoPiece describes one handling unit. Conversion fills both the imperial
// and metric fields so adapters can read whichever their carrier wants.
type CargoPiece struct {
	Quantity      int    `json:"quantity"`
	FreightClass  string `json:"freightClass,omitempty"` // required for LTL
	PackagingType string `json:"packagingType"`          // "pallet", "crate", "box", "drum"
	Stackable     bool   `json:"stackable"`
	Hazmat        bool   `json:"hazmat"`

	// Imperial (lb / in).
	WeightLbs float64 `json:"weightLbs"`
	LengthIn  float64 `json:"lengthIn"`
	WidthIn   float64 `json:"widthIn"`
	HeightIn  float64 `json:"heightIn"`

	// Metric (kg / cm).
	WeightKg float64 `json:"weightKg"`
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
}

// AccessorialFlags are the surcharge-triggering services a location may need.
// Adapters translate set flags into carrier codes through static tables;
// flags a carrier has no code for are omitted from its payload.
type AccessorialFlags struct {
	Liftgate       bool `json:"liftgate"`
	Residential    bool `json:"residential"`
	InsidePickup   bool `json:"insidePickup,omitempty"`
	InsideDelivery bool `json:"insideDelivery,omitempty"`
	LimitedAccess  bool `json:"limitedAccess"`
	Appointment    bool `json:"appointment"`
	TradeShow      bool `json:"tradeShow,omitempty"`
	Airport        bool `json:"airport,omitempty"`
}
