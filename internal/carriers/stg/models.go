// internal/carriers/stg/models.go
package stg

// authRequest is the STG token endpoint payload.
type authRequest struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// authResponse holds the response from STG's token endpoint.
type authResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	TokenType   string `json:"token_type"`
}

// quoteRequest is STG's rating payload. STG quotes LTL only and expects
// imperial units.
type quoteRequest struct {
	AccountID    string      `json:"accountId"`
	RateTable    string      `json:"rateTable"` // "CUSTOMER" or "MASTER"
	OriginZip    string      `json:"originZip"`
	DestZip      string      `json:"destinationZip"`
	PickupDate   string      `json:"pickupDate"`
	Items        []quoteItem `json:"items"`
	Accessorials []string    `json:"accessorials,omitempty"`
	Insurance    float64     `json:"insuredValue,omitempty"`
}

type quoteItem struct {
	Pieces       int     `json:"pieces"`
	WeightLbs    float64 `json:"weight"`
	LengthIn     float64 `json:"length"`
	WidthIn      float64 `json:"width"`
	HeightIn     float64 `json:"height"`
	FreightClass string  `json:"freightClass"`
	Packaging    string  `json:"packaging"`
	Stackable    bool    `json:"stackable"`
	Hazmat       bool    `json:"hazmat"`
}

// quoteResponse is STG's raw rating response.
type quoteResponse struct {
	Quotes []rawQuote `json:"quotes"`
}

type rawQuote struct {
	QuoteNumber  string     `json:"quoteNumber"`
	ServiceLevel string     `json:"serviceLevel"`
	TransitDays  int        `json:"transitDays"`
	Guaranteed   bool       `json:"guaranteed"`
	Expires      string     `json:"expires"`
	Charges      rawCharges `json:"charges"`
	Notes        []string   `json:"notes,omitempty"`
}

type rawCharges struct {
	Freight       float64 `json:"freight"`
	FuelSurcharge float64 `json:"fuelSurcharge"`
	Accessorials  float64 `json:"accessorials"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"` // informational; never trusted
}
