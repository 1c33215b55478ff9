// internal/carriers/teamww/models.go
package teamww

// quoteRequest is Team Worldwide's air freight rating payload. TeamWW keys
// requests on airport codes and wants metric units.
type quoteRequest struct {
	Account       string   `json:"account"`
	RateBasis     string   `json:"rateBasis"` // "CONTRACT" or "TARIFF"
	OriginAirport string   `json:"originAirport"`
	DestAirport   string   `json:"destinationAirport"`
	ReadyDate     string   `json:"readyDate"`
	Pieces        []piece  `json:"pieces"`
	Services      []string `json:"specialServices,omitempty"`
	InsuredValue  float64  `json:"insuredValue,omitempty"`
}

type piece struct {
	Count     int     `json:"count"`
	WeightKg  float64 `json:"weightKg"`
	LengthCm  float64 `json:"lengthCm"`
	WidthCm   float64 `json:"widthCm"`
	HeightCm  float64 `json:"heightCm"`
	Stackable bool    `json:"stackable"`
	Hazmat    bool    `json:"dangerousGoods"`
}

// quoteResponse is TeamWW's raw rating response.
type quoteResponse struct {
	Quotes []rawQuote `json:"quotes"`
}

type rawQuote struct {
	QuoteRef    string     `json:"quoteRef"`
	Product     string     `json:"product"`
	TransitDays int        `json:"transitDays"`
	Guaranteed  bool       `json:"guaranteed"`
	ValidTo     string     `json:"validTo"`
	Charges     rawCharges `json:"charges"`
	Remarks     []string   `json:"remarks,omitempty"`
}

// rawCharges splits surcharges finer than the canonical breakdown; security
// and handling fold into accessorials during normalization.
type rawCharges struct {
	AirFreight    float64 `json:"airFreight"`
	FuelSurcharge float64 `json:"fuelSurcharge"`
	Security      float64 `json:"security"`
	Handling      float64 `json:"handling"`
	Discount      float64 `json:"discount"`
}
