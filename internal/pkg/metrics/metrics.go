package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sundowner",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sundowner",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Sunset-specific metrics
	SunsetChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "sunset",
		Name:      "checks_total",
		Help:      "Total sunset visibility checks by verdict and view source",
	}, []string{"verdict", "source"})

	NoSunsetDays = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "sunset",
		Name:      "no_sunset_total",
		Help:      "Total checks on dates without a sunset, by condition",
	}, []string{"condition"})

	InlandLocations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "sunset",
		Name:      "inland_locations_total",
		Help:      "Total checks rejected because no shoreline was found",
	})

	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sundowner",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Duration of map and timezone provider calls, retries included",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"provider", "operation"})

	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "provider",
		Name:      "errors_total",
		Help:      "Total failed provider calls after retries",
	}, []string{"provider", "operation"})

	ReportsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "events",
		Name:      "reports_published_total",
		Help:      "Total sunset reports published to the event stream",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sundowner",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sundowner",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sundowner",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sundowner",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sundowner",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// PoolStat is the subset of pgxpool.Stat the pool gauges read.
type PoolStat interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
}

// UpdateDBPoolMetrics updates database pool gauges from pgx pool stats.
func UpdateDBPoolMetrics(s PoolStat) {
	DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
	DBPoolConnsIdle.Set(float64(s.IdleConns()))
	DBPoolConnsOpen.Set(float64(s.TotalConns()))
}

// ObserveProvider records the duration and outcome of a provider call.
func ObserveProvider(provider, operation string, start time.Time, err error) {
	ProviderRequestDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		ProviderErrors.WithLabelValues(provider, operation).Inc()
	}
}
