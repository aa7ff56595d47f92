// Package metrics exposes Prometheus metrics for the string-analyzer service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "string_analyzer"

// Query kinds used as the "kind" label.
const (
	QueryStructured      = "structured"
	QueryNaturalLanguage = "natural_language"
)

// Metrics holds the service collectors and the registry they belong to.
type Metrics struct {
	registry *prometheus.Registry

	RecordsCreated      prometheus.Counter
	RecordsDeleted      prometheus.Counter
	RecordsStored       prometheus.Gauge
	Queries             *prometheus.CounterVec
	TranslationFailures *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New creates the service metrics on a private registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecordsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "Strings analyzed and stored.",
		}),
		RecordsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_deleted_total",
			Help:      "Strings deleted.",
		}),
		RecordsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_stored",
			Help:      "Strings currently stored.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Filter queries evaluated, by kind.",
		}, []string{"kind"}),
		TranslationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_failures_total",
			Help:      "Natural-language queries rejected, by error kind.",
		}, []string{"reason"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.RecordsCreated,
		m.RecordsDeleted,
		m.RecordsStored,
		m.Queries,
		m.TranslationFailures,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
