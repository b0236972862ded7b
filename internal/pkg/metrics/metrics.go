package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classpoints",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "classpoints",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	attendanceRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classpoints",
			Subsystem: "attendance",
			Name:      "recorded_total",
			Help:      "Attendance check-ins recorded, by status.",
		},
		[]string{"status"},
	)

	attendanceDuplicates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "classpoints",
			Subsystem: "attendance",
			Name:      "duplicates_total",
			Help:      "Check-ins rejected because the student already attended that day.",
		},
	)

	pointsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "classpoints",
			Subsystem: "attendance",
			Name:      "points_awarded_total",
			Help:      "Points granted through attendance.",
		},
	)

	purchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classpoints",
			Subsystem: "store",
			Name:      "purchases_total",
			Help:      "Store purchase attempts, by item kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		attendanceRecorded,
		attendanceDuplicates,
		pointsAwarded,
		purchases,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one completed request. path should be the route
// template, not the raw URL, to keep label cardinality bounded.
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordAttendance counts a successful check-in.
func RecordAttendance(status string, points int) {
	attendanceRecorded.WithLabelValues(status).Inc()
	pointsAwarded.Add(float64(points))
}

// RecordDuplicateAttendance counts a same-day repeat check-in.
func RecordDuplicateAttendance() {
	attendanceDuplicates.Inc()
}

// RecordPurchase counts a purchase attempt; outcome is "success" or "insufficient".
func RecordPurchase(kind, outcome string) {
	purchases.WithLabelValues(kind, outcome).Inc()
}
