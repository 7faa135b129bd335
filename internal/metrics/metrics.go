// Package metrics provides Prometheus HTTP metrics middleware and domain counters.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	cascadeDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_cascade_deletes_total",
			Help: "Committed cascade deletions by entity level",
		},
		[]string{"level"},
	)

	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_user_registrations_total",
			Help: "User registration attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// Middleware returns gin middleware that records Prometheus metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		// Use the route pattern to avoid high cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CascadeDeleted counts a committed deletion rooted at level (board, list, card, comment).
func CascadeDeleted(level string) {
	cascadeDeletes.WithLabelValues(level).Inc()
}

func Registration(outcome string) {
	registrations.WithLabelValues(outcome).Inc()
}
