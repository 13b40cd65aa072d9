package compare

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	comparisonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farepilot_comparisons_total",
		Help: "Total fare comparisons served, by sort policy.",
	}, []string{"policy"})

	observedPriceQuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farepilot_observed_price_quotes_total",
		Help: "Offers served from captured observed prices instead of estimates.",
	})

	driverLookupFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farepilot_driver_lookup_fallback_total",
		Help: "Comparisons degraded to placeholder driver candidates.",
	})

	compareDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "farepilot_compare_duration_seconds",
		Help:    "End-to-end comparison latency.",
		Buckets: prometheus.DefBuckets,
	})
)
