package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// One collector per process; registering twice would panic
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Outcome is one of received, success, error
	Queries       *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	CatalogIngredients  prometheus.Gauge
	CatalogInteractions prometheus.Gauge

	// 0 closed, 1 half-open, 2 open
	BreakerState *prometheus.GaugeVec
}

// NewCollector returns the process collector, creating it under namespace on
// first use
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	globalCollector = &Collector{
		registry: registry,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Queries dispatched on the bus by outcome",
		}, []string{"query", "outcome"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Query handling latency",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"query"}),
		CacheHits:           counter("cache_hits_total", "Query results served from cache"),
		CacheMisses:         counter("cache_misses_total", "Cacheable queries computed afresh"),
		CatalogIngredients:  gauge("catalog_ingredients", "Ingredients in the loaded catalog"),
		CatalogInteractions: gauge("catalog_interactions", "Interactions in the loaded catalog"),
		BreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		}, []string{"name"}),
	}

	return globalCollector
}

// ResetForTesting drops the process collector so tests start from zero
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// IncrementCounter increments a named counter. Unknown names are ignored.
func (c *Collector) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "query_count":
		c.Queries.WithLabelValues(tags["query"], "received").Inc()
	case "query_success":
		c.Queries.WithLabelValues(tags["query"], "success").Inc()
	case "query_errors":
		c.Queries.WithLabelValues(tags["query"], "error").Inc()
	case "cache_hits":
		c.CacheHits.Inc()
	case "cache_misses":
		c.CacheMisses.Inc()
	}
}

// RecordDuration observes a named duration
func (c *Collector) RecordDuration(name string, duration time.Duration, tags map[string]string) {
	if name == "query_duration" {
		c.QueryDuration.WithLabelValues(tags["query"]).Observe(duration.Seconds())
	}
}

// SetGauge sets a named gauge
func (c *Collector) SetGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "catalog_ingredients":
		c.CatalogIngredients.Set(value)
	case "catalog_interactions":
		c.CatalogInteractions.Set(value)
	case "circuit_breaker_state":
		c.BreakerState.WithLabelValues(tags["name"]).Set(value)
	}
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// MetricsMiddleware counts and times requests by their chi route pattern
func MetricsMiddleware(collector *Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			// RoutePattern is only complete after routing
			route := "unknown"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			collector.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			collector.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
