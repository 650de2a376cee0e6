package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// domain metrics
	QuotaChecksTotal     *prometheus.CounterVec
	LLMRequestsTotal     *prometheus.CounterVec
	LLMRequestDuration   *prometheus.HistogramVec
	PaymentWebhooksTotal *prometheus.CounterVec

	// database metrics
	DBConnectionsActive prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge
}

// creates and registers all metrics on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scholargo_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scholargo_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		QuotaChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scholargo_quota_checks_total",
				Help: "Total number of quota checks by feature and result",
			},
			[]string{"feature", "result"},
		),
		LLMRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scholargo_llm_requests_total",
				Help: "Total number of LLM provider calls",
			},
			[]string{"provider", "operation", "outcome"},
		),
		LLMRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scholargo_llm_request_duration_seconds",
				Help:    "LLM provider call duration in seconds",
				Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"provider", "operation"},
		),
		PaymentWebhooksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scholargo_payment_webhooks_total",
				Help: "Total number of payment gateway notifications by outcome",
			},
			[]string{"gateway", "outcome"},
		),

		DBConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scholargo_db_connections_active",
				Help: "Number of acquired database connections",
			},
		),
		DBConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scholargo_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuotaChecksTotal,
		m.LLMRequestsTotal,
		m.LLMRequestDuration,
		m.PaymentWebhooksTotal,
		m.DBConnectionsActive,
		m.DBConnectionsIdle,
	)

	return m
}

func (m *Metrics) ObserveLLM(provider, operation, outcome string, elapsed time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(provider, operation, outcome).Inc()
	m.LLMRequestDuration.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveQuotaCheck(feature string, allowed bool) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}

	m.QuotaChecksTotal.WithLabelValues(feature, result).Inc()
}

func (m *Metrics) ObserveWebhook(gateway, outcome string) {
	m.PaymentWebhooksTotal.WithLabelValues(gateway, outcome).Inc()
}

// instruments gin requests; the route template is used as the path label
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// samples pool statistics until ctx is done
func (m *Metrics) CollectPoolStats(ctx context.Context, pool *pgxpool.Pool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stat := pool.Stat()
		m.DBConnectionsActive.Set(float64(stat.AcquiredConns()))
		m.DBConnectionsIdle.Set(float64(stat.IdleConns()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
