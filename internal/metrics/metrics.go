package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shorturl"

// Metrics holds the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	RequestDuration    *prometheus.HistogramVec
	LinksCreated       prometheus.Counter
	LinksReused        prometheus.Counter
	CodeCollisions     prometheus.Counter
	CreateConflicts    prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	StoreErrors        *prometheus.CounterVec
}

// New registers the service collectors with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the service collectors with reg.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		LinksCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_created_total",
			Help:      "Total number of links created",
		}),
		LinksReused: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_reused_total",
			Help:      "Total number of submissions answered with an existing link",
		}),
		CodeCollisions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_collisions_total",
			Help:      "Total number of generated short codes that were already taken",
		}),
		CreateConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "create_conflicts_total",
			Help:      "Total number of inserts that lost a race for the same original url",
		}),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of rejected url submissions",
			},
			[]string{"reason"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total number of failed store operations",
			},
			[]string{"operation"},
		),
	}
}

// Handler serves the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}

	m.RequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (m *Metrics) LinkCreated() {
	if m == nil {
		return
	}

	m.LinksCreated.Inc()
}

func (m *Metrics) LinkReused() {
	if m == nil {
		return
	}

	m.LinksReused.Inc()
}

func (m *Metrics) CodeCollision() {
	if m == nil {
		return
	}

	m.CodeCollisions.Inc()
}

func (m *Metrics) CreateConflict() {
	if m == nil {
		return
	}

	m.CreateConflicts.Inc()
}

func (m *Metrics) ValidationFailure(reason string) {
	if m == nil {
		return
	}

	m.ValidationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) StoreError(operation string) {
	if m == nil {
		return
	}

	m.StoreErrors.WithLabelValues(operation).Inc()
}
