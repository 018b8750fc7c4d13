// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeStatus    = "bad_status"
	OutcomeTransport = "transport"
	OutcomeMalformed = "malformed"
	OutcomeCanceled  = "canceled"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Indexer metrics
	FetchesTotal  *prometheus.CounterVec
	FetchLatency  *prometheus.HistogramVec
	FetchRetries  *prometheus.CounterVec
	RecordsParsed *prometheus.CounterVec

	// Normalization metrics
	Anomalies *prometheus.CounterVec

	// View metrics
	ViewLoads       *prometheus.CounterVec
	StaleDiscarded  *prometheus.CounterVec
	LandingDuration prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	RateLimited  prometheus.Counter

	// Health metrics
	LastUpstreamSuccess prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "treasury_dashboard"
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Indexer metrics
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "indexer",
			Name:      "fetches_total",
			Help:      "Total number of indexing API fetches by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "indexer",
			Name:      "fetch_latency_seconds",
			Help:      "Indexing API fetch latency in seconds, retries included",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		FetchRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "indexer",
			Name:      "fetch_retries_total",
			Help:      "Total number of retried fetch attempts",
		}, []string{"endpoint"}),
		RecordsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "indexer",
			Name:      "records_parsed_total",
			Help:      "Total number of records decoded from collection responses",
		}, []string{"endpoint"}),

		// Normalization metrics
		Anomalies: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "anomalies_total",
			Help:      "Irregular records seen during normalization by entity and kind",
		}, []string{"entity", "kind"}),

		// View metrics
		ViewLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "loads_total",
			Help:      "Total number of view loads by view and result",
		}, []string{"view", "result"}),
		StaleDiscarded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "stale_discarded_total",
			Help:      "Responses discarded because a newer request superseded them",
		}, []string{"view"}),
		LandingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "landing_duration_seconds",
			Help:      "Landing view fan-out duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		// HTTP metrics
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		}, []string{"route", "code"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		}),

		// Health metrics
		LastUpstreamSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_upstream_success_timestamp",
			Help:      "Unix timestamp of the last successful indexing API fetch",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", prometheus.DefaultRegisterer)

// RecordFetch records one logical fetch (all attempts) against an endpoint.
func RecordFetch(endpoint, outcome string, seconds float64) {
	DefaultMetrics.FetchesTotal.WithLabelValues(endpoint, outcome).Inc()
	DefaultMetrics.FetchLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordRetry records a retried attempt.
func RecordRetry(endpoint string) {
	DefaultMetrics.FetchRetries.WithLabelValues(endpoint).Inc()
}

// RecordRecords records how many records a collection response carried.
func RecordRecords(endpoint string, n int) {
	DefaultMetrics.RecordsParsed.WithLabelValues(endpoint).Add(float64(n))
}

// RecordUpstreamSuccess stamps the last successful fetch time.
func RecordUpstreamSuccess(unix int64) {
	DefaultMetrics.LastUpstreamSuccess.Set(float64(unix))
}

// RecordAnomaly records an irregular record. Its signature matches
// normalization.Observer.
func RecordAnomaly(entity, kind string) {
	DefaultMetrics.Anomalies.WithLabelValues(entity, kind).Inc()
}

// RecordViewLoad records a view load result.
func RecordViewLoad(view, result string) {
	DefaultMetrics.ViewLoads.WithLabelValues(view, result).Inc()
}

// RecordStale records a discarded superseded response.
func RecordStale(view string) {
	DefaultMetrics.StaleDiscarded.WithLabelValues(view).Inc()
}

// RecordLanding records landing fan-out duration.
func RecordLanding(seconds float64) {
	DefaultMetrics.LandingDuration.Observe(seconds)
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(route, code string, seconds float64) {
	DefaultMetrics.HTTPRequests.WithLabelValues(route, code).Inc()
	DefaultMetrics.HTTPDuration.WithLabelValues(route).Observe(seconds)
}

// RecordRateLimited records a rejected request.
func RecordRateLimited() {
	DefaultMetrics.RateLimited.Inc()
}
