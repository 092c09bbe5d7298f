package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/reoring/draftkit/draft"
)

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	detections  *prometheus.CounterVec
	migrations  *prometheus.CounterVec
	validations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registerer when
// it is not nil.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "draftkit_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "draftkit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "draftkit_detections_total",
			Help: "Detected schema dialects",
		}, []string{"draft"}),
		migrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "draftkit_migrations_total",
			Help: "Migrations by source dialect and completeness",
		}, []string{"source_draft", "complete"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "draftkit_validations_total",
			Help: "Data validations by dialect and outcome",
		}, []string{"draft", "valid"}),
	}
	if registerer != nil {
		registerer.MustRegister(m.requests, m.duration, m.detections, m.migrations, m.validations)
	}
	return m
}

func (m *Metrics) observeRequest(route string, status int, seconds float64) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(seconds)
}

func (m *Metrics) detected(d draft.Draft) {
	m.detections.WithLabelValues(string(d)).Inc()
}

func (m *Metrics) migrated(from draft.Draft, complete bool) {
	m.migrations.WithLabelValues(string(from), strconv.FormatBool(complete)).Inc()
}

func (m *Metrics) validated(d draft.Draft, valid bool) {
	m.validations.WithLabelValues(string(d), strconv.FormatBool(valid)).Inc()
}
