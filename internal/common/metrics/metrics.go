// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CarrierQuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_quotes_total",
			Help: "Total number of carrier quote calls by outcome",
		},
		[]string{"carrier", "outcome"},
	)

	CarrierQuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "carrier_quote_duration_seconds",
			Help: "Duration of carrier quote calls in seconds",
		},
		[]string{"carrier"},
	)

	AggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_aggregations_total",
			Help: "Total number of rate aggregations by result",
		},
		[]string{"result"},
	)

	AsyncRequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "async_quote_requests_active",
			Help: "Number of quote requests currently processing",
		},
	)

	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_token_refreshes_total",
			Help: "Total number of carrier auth token refreshes by outcome",
		},
		[]string{"carrier", "outcome"},
	)
)
