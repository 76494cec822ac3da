package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catering",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catering",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	ordersConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "catering",
			Subsystem: "orders",
			Name:      "confirmed_total",
			Help:      "Total number of confirmed orders.",
		},
	)

	orderRevenue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "catering",
			Subsystem: "orders",
			Name:      "revenue_total",
			Help:      "Sum of totalAmount over confirmed orders.",
		},
	)

	exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catering",
			Subsystem: "exports",
			Name:      "rendered_total",
			Help:      "Invoice exports by format and outcome.",
		},
		[]string{"format", "status"},
	)

	storeWriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catering",
			Subsystem: "store",
			Name:      "write_failures_total",
			Help:      "Failed collection writes by collection.",
		},
		[]string{"collection"},
	)

	busyActions = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catering",
			Subsystem: "actions",
			Name:      "duration_seconds",
			Help:      "Duration of busy-wrapped actions, delay included.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"action", "status"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ordersConfirmed,
		orderRevenue,
		exports,
		storeWriteFailures,
		busyActions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordOrderConfirmed(total float64) {
	ordersConfirmed.Inc()
	if total > 0 {
		orderRevenue.Add(total)
	}
}

func RecordExport(format string, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	exports.WithLabelValues(format, status).Inc()
}

func RecordStoreFailure(collection string) {
	storeWriteFailures.WithLabelValues(collection).Inc()
}

func RecordAction(action string, duration time.Duration, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	busyActions.WithLabelValues(action, status).Observe(duration.Seconds())
}
