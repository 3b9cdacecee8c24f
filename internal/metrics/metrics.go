package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "tennis_rally"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBConnectionsOpen        prometheus.Gauge
	DBConnectionsInUse       prometheus.Gauge
	DBConnectionsIdle        prometheus.Gauge
	DBConnectionsMax         prometheus.Gauge
	DBConnectionWaitTotal    prometheus.Counter
	DBConnectionWaitDuration prometheus.Counter
	DBQueryDuration          *prometheus.HistogramVec
	DBQueryErrors            *prometheus.CounterVec

	// Business gauges, refreshed by the collector
	UsersTotal          prometheus.Gauge
	UsersBySkillLevel   *prometheus.GaugeVec
	EventsTotal         prometheus.Gauge
	UpcomingEventsTotal prometheus.Gauge
	ParticipationsTotal prometheus.Gauge
	RallyEdgesTotal     prometheus.Gauge

	// Business counters, incremented by services
	UserRegisteredTotal prometheus.Counter
	LoginAttemptsTotal  *prometheus.CounterVec
	EventCreatedTotal   prometheus.Counter
	EventJoinsTotal     *prometheus.CounterVec
	RallyStartedTotal   prometheus.Counter
	QuizSubmittedTotal  *prometheus.CounterVec

	dbWait dbWaitState

	// Logger for error reporting
	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	factory := promauto.With(registerer)

	if logger == nil {
		logger = zap.NewNop()
	}

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),

		DBConnectionsOpen:        gauge("db_connections_open", "Current number of open database connections"),
		DBConnectionsInUse:       gauge("db_connections_in_use", "Current number of in-use database connections"),
		DBConnectionsIdle:        gauge("db_connections_idle", "Current number of idle database connections"),
		DBConnectionsMax:         gauge("db_connections_max", "Maximum number of open database connections configured"),
		DBConnectionWaitTotal:    counter("db_connection_wait_total", "Total number of times waited for a database connection"),
		DBConnectionWaitDuration: counter("db_connection_wait_duration_seconds_total", "Total duration waited for database connections in seconds"),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation", "table"},
		),
		DBQueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_query_errors_total",
				Help:      "Total number of database query errors",
			},
			[]string{"operation", "table"},
		),

		UsersTotal: gauge("users_total", "Total number of registered users"),
		UsersBySkillLevel: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "users_by_skill_level",
				Help:      "Number of users per skill level",
			},
			[]string{"skill_level"},
		),
		EventsTotal:         gauge("events_total", "Total number of events"),
		UpcomingEventsTotal: gauge("upcoming_events_total", "Number of events scheduled from now on"),
		ParticipationsTotal: gauge("participations_total", "Total number of roster entries across events"),
		RallyEdgesTotal:     gauge("rally_edges_total", "Total number of rally relationships"),

		UserRegisteredTotal: counter("user_registered_total", "Total number of successful registrations"),
		LoginAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		EventCreatedTotal: counter("event_created_total", "Total number of event creations"),
		EventJoinsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "event_joins_total",
				Help:      "Total number of join attempts by outcome",
			},
			[]string{"outcome"},
		),
		RallyStartedTotal: counter("rally_started_total", "Total number of rally relationships started"),
		QuizSubmittedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quiz_submitted_total",
				Help:      "Total number of quiz submissions by resulting skill level",
			},
			[]string{"skill_level"},
		),

		logger: logger,
	}
}

// safeExecute wraps metric operations with panic recovery; a nil receiver records nothing
func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("Panic in metrics operation",
					zap.String("operation", operation),
					zap.Any("panic", r),
				)
			}
		}
	}()
	fn()
}
