package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis workflow metrics
var (
	// AnalysesTotal tracks completed analysis runs by terminal status
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total analysis runs by terminal status (done/failed)",
		},
		[]string{"status"},
	)

	// AnalysisDuration tracks end-to-end analysis duration in seconds
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// PostsScored tracks how many posts each analysis scored
	PostsScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_posts_scored",
			Help:    "Number of posts scored per analysis",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)
)

// Upstream API metrics
var (
	// UpstreamRequestsTotal tracks calls to the post fetcher and sentiment scorer
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total upstream API requests by service and status",
		},
		[]string{"service", "status"},
	)

	// UpstreamRequestDuration tracks upstream API latency in seconds
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream API request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service"},
	)
)

// Result cache metrics
var (
	// CacheOpsTotal tracks result-store lookups by outcome (hit/miss/error)
	CacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_operations_total",
			Help: "Result store lookups by outcome",
		},
		[]string{"outcome"},
	)

	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)

// WebSocket metrics
var (
	// WebsocketClients tracks currently connected dashboard clients
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connected_clients",
			Help: "Currently connected dashboard WebSocket clients",
		},
	)

	// WebsocketDrops tracks clients dropped for slow consumption
	WebsocketDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_dropped_clients_total",
			Help: "Clients dropped because their send queue was full",
		},
	)
)
