// Package metrics holds the prometheus collectors for catalog traffic,
// cache lookups, and view transitions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	labelEndpoint   = "endpoint"
	labelOutcome    = "outcome"
	labelResult     = "result"
	labelTransition = "transition"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeStale    = "stale"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests     *prometheus.CounterVec
	Latency      *prometheus.HistogramVec
	CacheLookups *prometheus.CounterVec
	Transitions  *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokedex_catalog_requests_total",
				Help: "Catalog API requests by endpoint and outcome",
			},
			[]string{labelEndpoint, labelOutcome},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "pokedex_catalog_request_duration_seconds",
				Help: "Catalog API latency",
			},
			[]string{labelEndpoint},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokedex_cache_lookups_total",
				Help: "Response cache lookups by result",
			},
			[]string{labelResult},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pokedex_view_transitions_total",
				Help: "View controller transitions by name and outcome",
			},
			[]string{labelTransition, labelOutcome},
		),
	}

	reg.MustRegister(m.Requests, m.Latency, m.CacheLookups, m.Transitions)
	return m
}

// ObserveRequest records one catalog request.
func (m *Metrics) ObserveRequest(endpoint, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.Latency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	m.Requests.WithLabelValues(endpoint, outcome).Inc()
}

// CacheLookup records a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Transition records the outcome of a view transition.
func (m *Metrics) Transition(name, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(name, outcome).Inc()
}

// Handler exposes the registry in the prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
