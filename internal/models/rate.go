// internal/models/rate.go
package models

// CarrierRate is the canonical normalized output of any carrier adapter.
type CarrierRate struct {
	Carrier        string        `json:"carrier"`
	Service        string        `json:"service"`
	TransitDays    int           `json:"transitDays"`
	Guaranteed     bool          `json:"guaranteed"`
	Guarantor      string        `json:"guarantor,omitempty"`
	Rate           RateBreakdown `json:"rate"`
	QuoteID        string        `json:"quoteId"`
	ExpirationDate string        `json:"expirationDate,omitempty"`
	Details        RateDetails   `json:"details"`
}

// RateBreakdown holds the monetary components of a quote. Total is always
// recomputed from the components, never copied from the carrier response.
type RateBreakdown struct {
	Base         float64 `json:"base"`
	Fuel         float64 `json:"fuel"`
	Accessorials float64 `json:"accessorials"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// Recompute sets Total from the components.
func (r *RateBreakdown) Recompute() {
	r.Total = r.Base + r.Fuel + r.Accessorials - r.Discount
}

// ApplyMarkup marks up base, fuel and accessorials by pct percent and
// recomputes the total. Discounts are never marked up.
func (r *RateBreakdown) ApplyMarkup(pct float64) {
	if pct > 0 {
		factor := 1 + pct/100
		r.Base *= factor
		r.Fuel *= factor
		r.Accessorials *= factor
	}
	r.Recompute()
}

type RateDetails struct {
	Notes []string `json:"notes,omitempty"`
}

// CarrierError names a carrier whose quote attempt failed and why.
type CarrierError struct {
	Carrier string `json:"carrier"`
	Message string `json:"message"`
}

// AggregationResult is the combined output of one fan-out: rates sorted
// ascending by total, plus one error entry per failed carrier.
type AggregationResult struct {
	Rates  []CarrierRate  `json:"rates"`
	Errors []CarrierError `json:"errors"`
}
