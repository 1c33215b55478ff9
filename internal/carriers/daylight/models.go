// internal/carriers/daylight/models.go
package daylight

// tokenResponse holds the response from Daylight's OAuth-style token
// endpoint. Credentials go form-encoded, client_credentials grant.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// rateRequest is Daylight's LTL rating payload.
type rateRequest struct {
	Account      string        `json:"account"`
	PricingLevel string        `json:"pricingLevel"` // "NEGOTIATED" or "STANDARD"
	Origin       ratePoint     `json:"origin"`
	Destination  ratePoint     `json:"destination"`
	ShipDate     string        `json:"shipDate"`
	Handling     []rateFreight `json:"handlingUnits"`
	Services     []string      `json:"services,omitempty"`
}

type ratePoint struct {
	PostalCode string `json:"postalCode"`
}

type rateFreight struct {
	Units     int     `json:"units"`
	Weight    float64 `json:"weight"` // lbs
	Length    float64 `json:"length"` // in
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Class     string  `json:"nmfcClass"`
	Stackable bool    `json:"stackable"`
	Hazardous bool    `json:"hazardous"`
}

// rateResponse is Daylight's raw rating response.
type rateResponse struct {
	RateQuotes []rateQuote `json:"rateQuotes"`
}

type rateQuote struct {
	ID           string  `json:"id"`
	Service      string  `json:"service"`
	Days         int     `json:"days"`
	IsGuaranteed bool    `json:"isGuaranteed"`
	ValidUntil   string  `json:"validUntil"`
	LineHaul     float64 `json:"lineHaul"`
	Fuel         float64 `json:"fuel"`
	Extras       float64 `json:"extras"`
	DiscountAmt  float64 `json:"discountAmt"`
	Remarks      string  `json:"remarks,omitempty"`
}
