package obs

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Leave lifecycle metrics
var (
	leaveSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_submissions_total",
			Help: "Leave submissions by kind and outcome code.",
		},
		[]string{"kind", "outcome"},
	)

	leaveDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_decisions_total",
			Help: "Approver decisions by decision and outcome code.",
		},
		[]string{"decision", "outcome"},
	)

	leaveHRConfirmations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_hr_confirmations_total",
			Help: "Rows whose HR confirmation flag changed, by action.",
		},
		[]string{"action"},
	)

	outboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Outbox events handed to the broker, by result.",
		},
		[]string{"result"},
	)
)

const OutcomeOK = "ok"

var initOnce sync.Once

// Init registers every collector in the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight, httpRequestsTotal, httpRequestDuration,
			leaveSubmissions, leaveDecisions, leaveHRConfirmations,
			outboxPublished,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func HTTPStarted() {
	httpInFlight.Inc()
}

func HTTPFinished(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	httpRequestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
	httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	httpInFlight.Dec()
}

func LeaveSubmitted(kind, outcome string) {
	leaveSubmissions.WithLabelValues(kind, outcome).Inc()
}

func LeaveDecided(decision, outcome string) {
	leaveDecisions.WithLabelValues(decision, outcome).Inc()
}

func LeaveHRConfirmed(action string, affected int) {
	leaveHRConfirmations.WithLabelValues(action).Add(float64(affected))
}

func OutboxPublished(result string) {
	outboxPublished.WithLabelValues(result).Inc()
}
