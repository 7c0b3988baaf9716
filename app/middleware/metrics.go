package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// In-flight HTTP requests
	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Purchase resolutions partitioned by the winning source
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_resolutions_total",
			Help: "Checkout destinations resolved, by winning source",
		},
		[]string{"source"},
	)

	// Checkout link lookups partitioned by origin (admin store, env, miss)
	checkoutLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_link_lookups_total",
			Help: "Checkout link lookups, by result origin",
		},
		[]string{"origin"},
	)
)

// ObserveResolution records which resolution tier won a purchase request.
func ObserveResolution(source string) {
	resolutionsTotal.WithLabelValues(source).Inc()
}

// ObserveCheckoutLookup records where a checkout link lookup was served from.
func ObserveCheckoutLookup(origin string) {
	checkoutLinksTotal.WithLabelValues(origin).Inc()
}

// Metrics returns a Fiber v3 middleware that records basic Prometheus metrics.
// Labels are kept low-cardinality by using the matched route path when available.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path // Use route template to avoid high cardinality
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}
