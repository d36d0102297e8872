package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// CodesIssued tracks code issuance per entity type and outcome
	// (issued, replayed, skipped, collision).
	CodesIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codes_issued_total",
			Help: "Total number of entity code issuance attempts by outcome",
		},
		[]string{"entity_type", "outcome"},
	)

	// SequenceResets counts admin sequence resets.
	SequenceResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "code_sequence_resets_total",
			Help: "Total number of admin sequence resets",
		},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, RequestDuration, CodesIssued, SequenceResets)
}

// Outcome labels for CodesIssued.
const (
	OutcomeIssued    = "issued"
	OutcomeReplayed  = "replayed"
	OutcomeSkipped   = "skipped"
	OutcomeCollision = "collision"
)

// Middleware records per-request counters and latency.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			path := c.Path()
			RequestCounter.WithLabelValues(method, path, status).Inc()
			RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
