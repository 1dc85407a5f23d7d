package metrics

import (
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
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	dealMoves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_deal_moves_total",
			Help: "Total number of deal stage moves by outcome",
		},
		[]string{"outcome"},
	)

	moveRollbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_deal_move_rollbacks_total",
			Help: "Total number of optimistic moves reverted after a remote failure",
		},
	)

	funnelsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_funnels_saved_total",
			Help: "Total number of funnels committed from the stage editor",
		},
		[]string{"mode"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)

	eventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_events_consumed_total",
			Help: "Board events consumed by the history worker",
		},
		[]string{"result"},
	)
)

// Deal move outcomes.
const (
	MoveSynced     = "synced"
	MoveFailed     = "failed"
	MoveRolledBack = "rolled_back"
)

func ObserveHTTP(method, path, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func ConnectionOpened() { activeConnections.Inc() }

func ConnectionClosed() { activeConnections.Dec() }

func RecordDealMove(outcome string) {
	dealMoves.WithLabelValues(outcome).Inc()
	if outcome == MoveRolledBack {
		moveRollbacks.Inc()
	}
}

func RecordFunnelSaved(mode string) {
	funnelsSaved.WithLabelValues(mode).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

func RecordEventConsumed(result string) {
	eventsConsumed.WithLabelValues(result).Inc()
}

// DealMoves exposes the counter for tests.
func DealMoves() *prometheus.CounterVec { return dealMoves }

// IntegrationErrors exposes the counter for tests.
func IntegrationErrors() *prometheus.CounterVec { return integrationErrors }

// HTTPRequests exposes the counter for tests.
func HTTPRequests() *prometheus.CounterVec { return httpRequestsTotal }

// EventsConsumed exposes the counter for tests.
func EventsConsumed() *prometheus.CounterVec { return eventsConsumed }
