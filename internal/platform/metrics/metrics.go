// Package metrics registers the Prometheus metrics of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stock_analysis"

// defaultBuckets are histogram buckets for durations in seconds.
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics holds every collector. A nil *Metrics records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamDuration      *prometheus.HistogramVec

	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec

	IngestTotal    *prometheus.CounterVec
	IngestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   defaultBuckets,
		}, []string{"method", "route"}),
		UpstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of requests to the financial data provider",
		}, []string{"endpoint", "status"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "duration_seconds",
			Help:      "Latency of requests to the financial data provider",
			Buckets:   defaultBuckets,
		}, []string{"endpoint"}),
		CircuitBreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "circuit_breaker",
			Name:      "state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		}, []string{"breaker"}),
		CircuitBreakerTrips: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "circuit_breaker",
			Name:      "trips_total",
			Help:      "Number of times a circuit breaker opened",
		}, []string{"breaker"}),
		IngestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "runs_total",
			Help:      "Financial refresh runs by outcome",
		}, []string{"outcome"}),
		IngestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "duration_seconds",
			Help:      "Duration of financial refresh runs",
			Buckets:   defaultBuckets,
		}, []string{"outcome"}),
		gatherer: reg,
	}
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}

// ObserveUpstream records one call to the data provider.
func (m *Metrics) ObserveUpstream(endpoint, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// SetBreakerState publishes the state of a circuit breaker.
func (m *Metrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBreakerTrip counts a transition to the open state.
func (m *Metrics) RecordBreakerTrip(name string) {
	if m == nil {
		return
	}
	m.CircuitBreakerTrips.WithLabelValues(name).Inc()
}

// ObserveIngest records the outcome of one refresh run.
func (m *Metrics) ObserveIngest(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.IngestTotal.WithLabelValues(outcome).Inc()
	m.IngestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
