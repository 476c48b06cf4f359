package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campwatch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campwatch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "campwatch",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Trigger evaluation metrics
	evaluationPassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campwatch",
			Subsystem: "evaluation",
			Name:      "passes_total",
			Help:      "Total number of periodic evaluation passes",
		},
		[]string{"status"},
	)

	triggersEvaluatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campwatch",
			Subsystem: "evaluation",
			Name:      "triggers_total",
			Help:      "Total number of trigger evaluations",
		},
		[]string{"metric", "outcome"},
	)

	evaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "campwatch",
			Subsystem: "evaluation",
			Name:      "trigger_duration_seconds",
			Help:      "Duration of a single trigger evaluation in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	windowsCheckedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campwatch",
			Subsystem: "evaluation",
			Name:      "windows_checked_total",
			Help:      "Total number of sliding windows inspected",
		},
	)

	// Alert metrics
	alertsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campwatch",
			Subsystem: "alerts",
			Name:      "emitted_total",
			Help:      "Total number of alerts persisted",
		},
		[]string{"metric", "severity"},
	)

	alertsSuppressedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campwatch",
			Subsystem: "alerts",
			Name:      "suppressed_total",
			Help:      "Total number of alerts suppressed by cooldown",
		},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campwatch",
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Total number of notification delivery attempts",
		},
		[]string{"status"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordPass records the outcome of a periodic evaluation pass
func RecordPass(status string) {
	evaluationPassesTotal.WithLabelValues(status).Inc()
}

// RecordTriggerEvaluation records a single trigger evaluation
func RecordTriggerEvaluation(metric, outcome string, duration time.Duration, windowsChecked int) {
	triggersEvaluatedTotal.WithLabelValues(metric, outcome).Inc()
	evaluationDuration.Observe(duration.Seconds())
	windowsCheckedTotal.Add(float64(windowsChecked))
}

// RecordAlertEmitted records a persisted alert
func RecordAlertEmitted(metric, severity string) {
	alertsEmittedTotal.WithLabelValues(metric, severity).Inc()
}

// RecordAlertSuppressed records an alert suppressed by the cooldown policy
func RecordAlertSuppressed() {
	alertsSuppressedTotal.Inc()
}

// RecordNotification records a notification delivery attempt
func RecordNotification(status string) {
	notificationsTotal.WithLabelValues(status).Inc()
}
