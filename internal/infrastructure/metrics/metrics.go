package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Authentication metrics
	AuthAttempts   *prometheus.CounterVec
	AuthFailures   *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	// Access guard metrics
	GuardDecisions *prometheus.CounterVec
	ViewSwitches   *prometheus.CounterVec

	// CRM metrics
	VendorsSourced  prometheus.Counter
	JobsGenerated   prometheus.Counter
	AuditsSubmitted *prometheus.CounterVec
	AccountMoves    *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	PublishErrors   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
			[]string{"result"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_auth_failures_total",
				Help: "Total number of authentication failures by reason",
			},
			[]string{"reason"},
		),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "xiri_active_sessions",
			Help: "Number of active sessions",
		}),

		// Access guard metrics
		GuardDecisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_guard_decisions_total",
				Help: "Total number of route guard decisions by outcome",
			},
			[]string{"outcome", "role"},
		),
		ViewSwitches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_view_switches_total",
				Help: "Total number of view mode switches by target mode",
			},
			[]string{"mode"},
		),

		// CRM metrics
		VendorsSourced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "xiri_vendors_sourced_total",
			Help: "Total number of vendors imported from the directory",
		}),
		JobsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "xiri_jobs_generated_total",
			Help: "Total number of nightly jobs generated",
		}),
		AuditsSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_audits_submitted_total",
				Help: "Total number of audit reports submitted by rating",
			},
			[]string{"rating"},
		),
		AccountMoves: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_account_stage_moves_total",
				Help: "Total number of account stage transitions",
			},
			[]string{"stage"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xiri_http_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xiri_db_duration_seconds",
				Help:    "Duration of database queries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "xiri_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_db_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_redis_operations_total",
				Help: "Total number of Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_redis_errors_total",
				Help: "Total number of Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"endpoint"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xiri_events_published_total",
				Help: "Total number of activity events published",
			},
			[]string{"event_type"},
		),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "xiri_publish_errors_total",
			Help: "Total number of activity publish errors",
		}),
	}
}
