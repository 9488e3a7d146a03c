// Package metrics holds the Prometheus collectors of the quote service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// quotesTotal counts quote calculations by season and outcome.
	quotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_calculations_total",
		Help: "Total number of quote calculations by season and outcome",
	}, []string{"season", "outcome"}) // outcome: ok, rejected

	// quoteAmount tracks discounted quote totals in whole currency units.
	quoteAmount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_total_amount",
		Help:    "Discounted quote totals in whole currency units",
		Buckets: prometheus.ExponentialBuckets(10_000, 2, 12),
	}, []string{"season"})

	// quoteDiscount tracks the applied discount percent.
	quoteDiscount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_discount_percent",
		Help:    "Discount percent applied to quotes",
		Buckets: []float64{0, 5, 10, 15, 20, 30, 50},
	}, []string{"season"})

	// overrideSaves counts tariff override writes.
	overrideSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tariff_override_saves_total",
		Help: "Total number of tariff override saves by season and result",
	}, []string{"season", "result"}) // result: ok, invalid, error

	// overrideLoadDuration tracks how long loading the override blob takes.
	overrideLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tariff_override_load_duration_seconds",
		Help:    "Time taken to load tariff overrides",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// httpDuration tracks request latency by route.
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RecordQuote records a successful quote.
func RecordQuote(season string, totalWholeUnits int64, discountPercent float64) {
	quotesTotal.WithLabelValues(season, "ok").Inc()
	quoteAmount.WithLabelValues(season).Observe(float64(totalWholeUnits))
	quoteDiscount.WithLabelValues(season).Observe(discountPercent)
}

// RecordRejectedQuote records a quote that failed input checks.
func RecordRejectedQuote(season string) {
	quotesTotal.WithLabelValues(season, "rejected").Inc()
}

// RecordOverrideSave records the result of an override write.
func RecordOverrideSave(season, result string) {
	overrideSaves.WithLabelValues(season, result).Inc()
}

// ObserveOverrideLoad records how long an override load took.
func ObserveOverrideLoad(d time.Duration) {
	overrideLoadDuration.Observe(d.Seconds())
}

// ObserveHTTP records one handled request.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
