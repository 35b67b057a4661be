// Package infrastructure holds the logging and metrics plumbing shared
// by the CLI and the HTTP server.
package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	runsTotal        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	bracketsLast     prometheus.Gauge
	unrecognized     prometheus.Counter
	httpRequests     *prometheus.CounterVec
	rateLimitedTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics registers all collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ir_table_runs_total",
				Help: "Tax table builds by outcome",
			},
			[]string{"outcome"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ir_table_run_duration_seconds",
				Help:    "Time to fetch and assemble the tax table",
				Buckets: prometheus.DefBuckets,
			},
		),
		bracketsLast: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ir_table_brackets",
				Help: "Brackets produced by the last successful build",
			},
		),
		unrecognized: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ir_table_unrecognized_ranges_total",
				Help: "Faixa cells that matched no known pattern",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ir_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		rateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ir_http_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.runsTotal,
		m.runDuration,
		m.bracketsLast,
		m.unrecognized,
		m.httpRequests,
		m.rateLimitedTotal,
	)
	return m
}

// ObserveRun records one table build.
func (m *Metrics) ObserveRun(outcome string, brackets int, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(elapsed.Seconds())
	if outcome == "ok" {
		m.bracketsLast.Set(float64(brackets))
	}
}

// ObserveUnrecognized counts one unclassified faixa.
func (m *Metrics) ObserveUnrecognized() {
	m.unrecognized.Inc()
}

// ObserveHTTP counts one served request.
func (m *Metrics) ObserveHTTP(route string, code int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ObserveRateLimited counts one rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.rateLimitedTotal.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
