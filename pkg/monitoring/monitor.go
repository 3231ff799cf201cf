package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// ActivePracticeSessions 当前进行中的练习会话数
	ActivePracticeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "practice_active_sessions",
			Help: "Number of practice sessions currently in progress",
		},
	)

	// PracticeFinalizations 按结束原因统计的结算次数
	PracticeFinalizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practice_finalizations_total",
			Help: "Total number of finalized practice sessions by reason",
		},
		[]string{"reason"},
	)

	// PracticePersistFailures 成绩落库失败次数
	PracticePersistFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "practice_persist_failures_total",
			Help: "Total number of failed practice attempt persists",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ActivePracticeSessions)
	prometheus.MustRegister(PracticeFinalizations)
	prometheus.MustRegister(PracticePersistFailures)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
