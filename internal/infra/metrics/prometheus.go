// Package metrics exposes ledger instrumentation to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements adapter.MetricsRecorder on a private registry so several
// instances can coexist in one process.
type Recorder struct {
	registry         *prometheus.Registry
	analyticsQueries *prometheus.CounterVec
	analyticsLatency *prometheus.HistogramVec
	insights         *prometheus.CounterVec
	ledgerWrites     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

// NewRecorder creates a recorder whose metric names are prefixed by namespace.
func NewRecorder(namespace string) *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		analyticsQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analytics_queries_total",
				Help:      "Total number of analytics queries",
			},
			[]string{"operation", "status"},
		),
		analyticsLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analytics_query_duration_seconds",
				Help:      "Analytics query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		insights: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insights_generated_total",
				Help:      "Total number of insights produced by rule",
			},
			[]string{"rule"},
		),
		ledgerWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_writes_total",
				Help:      "Total number of successful ledger mutations",
			},
			[]string{"entity", "action"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveAnalytics implements adapter.MetricsRecorder.
func (r *Recorder) ObserveAnalytics(operation string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.analyticsQueries.WithLabelValues(operation, status).Inc()
	r.analyticsLatency.WithLabelValues(operation).Observe(seconds)
}

// CountInsights implements adapter.MetricsRecorder.
func (r *Recorder) CountInsights(rule string, n int) {
	r.insights.WithLabelValues(rule).Add(float64(n))
}

// CountLedgerWrite implements adapter.MetricsRecorder.
func (r *Recorder) CountLedgerWrite(entity, action string) {
	r.ledgerWrites.WithLabelValues(entity, action).Inc()
}

// ObserveHTTP records one served request. route is the matched pattern, not
// the raw path.
func (r *Recorder) ObserveHTTP(method, route string, status int, seconds float64) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
