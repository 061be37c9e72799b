// Package metrics exposes Prometheus collectors for the HTTP API.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	describeTotal   *prometheus.CounterVec
	fieldChecks     *prometheus.CounterVec
	horizonHits     prometheus.Counter
}

// New creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil).
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of API requests",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"route"},
		),
		describeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "describe_total",
				Help:      "Descriptions produced, by result type",
			},
			[]string{"type"},
		),
		fieldChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "field_validations_total",
				Help:      "Single-field validations, by field and outcome",
			},
			[]string{"field", "valid"},
		),
		horizonHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimator_horizon_exhausted_total",
				Help:      "Estimations that returned fewer runs than requested",
			},
		),
	}

	reg.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.describeTotal,
		m.fieldChecks,
		m.horizonHits,
	)

	return m
}

func (m *Metrics) RecordRequest(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) RecordDescribe(resultType string) {
	if m == nil {
		return
	}
	m.describeTotal.WithLabelValues(resultType).Inc()
}

func (m *Metrics) RecordFieldCheck(field string, valid bool) {
	if m == nil {
		return
	}
	m.fieldChecks.WithLabelValues(field, strconv.FormatBool(valid)).Inc()
}

func (m *Metrics) RecordHorizonExhausted() {
	if m == nil {
		return
	}
	m.horizonHits.Inc()
}
