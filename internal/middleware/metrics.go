package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors. The collectors are constructed
// eagerly so services can record into them even in tests; RegisterMetrics
// wires them into the default registry at startup.
var Metrics = struct {
	RequestDuration   *prometheus.HistogramVec
	RequestsInFlight  prometheus.Gauge
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	UpstreamDuration  *prometheus.HistogramVec
	UpstreamFailures  *prometheus.CounterVec
	AggregationsTotal prometheus.Counter
}{
	RequestDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dsastats_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	),
	RequestsInFlight: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dsastats_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	),
	CacheHits: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dsastats_cache_hits_total",
			Help: "Total aggregation cache hits.",
		},
	),
	CacheMisses: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dsastats_cache_misses_total",
			Help: "Total aggregation cache misses.",
		},
	),
	UpstreamDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dsastats_upstream_fetch_duration_seconds",
			Help:    "Platform API fetch duration in seconds, by platform.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"platform"},
	),
	UpstreamFailures: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dsastats_upstream_failures_total",
			Help: "Failed platform fetches, by platform.",
		},
		[]string{"platform"},
	),
	AggregationsTotal: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dsastats_aggregations_total",
			Help: "Total aggregation requests served.",
		},
	),
}

// RegisterMetrics registers all collectors plus pgx pool gauges. Call once
// at startup.
func RegisterMetrics(pool *pgxpool.Pool) {
	if pool != nil {
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "dsastats_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "dsastats_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	}

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.UpstreamDuration,
		Metrics.UpstreamFailures,
		Metrics.AggregationsTotal,
	)
}

// MetricsMiddleware records request duration and in-flight count.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers.
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/preview/"):
		return "/preview/:userid"
	case strings.HasPrefix(path, "/leaderboard/"):
		return "/leaderboard/:page"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
