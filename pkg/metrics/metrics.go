package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP
// =============================================================================

// HttpRequestsTotal counts handled requests.
// Example: rate(http_requests_total{service="ride-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration buckets range from 1ms to 10s.
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database
// =============================================================================

var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaMessagesDiscarded counts payloads dropped without processing.
// reason: empty, malformed
var KafkaMessagesDiscarded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_discarded_total",
		Help: "Total number of Kafka messages discarded by consumers",
	},
	[]string{"service", "topic", "reason"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // produce, fetch, consume, commit
)

// =============================================================================
// Remote calls
// =============================================================================

// DirectoryLookups counts driver/passenger lookups by outcome.
// outcome: found, not_found, forbidden, transport_error
var DirectoryLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "directory_lookups_total",
		Help: "Total number of remote directory lookups by outcome",
	},
	[]string{"directory", "outcome"},
)

var DirectoryLookupRetries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "directory_lookup_retries_total",
		Help: "Total number of retried directory lookups",
	},
	[]string{"directory"},
)

// =============================================================================
// Business
// =============================================================================

var DriversRegistered = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "drivers_registered_total",
		Help: "Total number of drivers registered",
	},
)

var PassengersRegistered = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "passengers_registered_total",
		Help: "Total number of passengers registered",
	},
)

var RidesCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "rides_created_total",
		Help: "Total number of rides created",
	},
)

// RideStatusTransitions labels: from, to, result (applied, rejected)
var RideStatusTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ride_status_transitions_total",
		Help: "Total number of ride status transitions",
	},
	[]string{"from", "to", "result"},
)

var RatingsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "ratings_created_total",
		Help: "Total number of ratings created",
	},
)

var RatingsScore = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ratings_score",
		Help:    "Distribution of rating scores",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
	[]string{"subject"}, // driver, passenger
)

// AccessDecisions labels: decision (granted, denied, error)
var AccessDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rating_access_decisions_total",
		Help: "Total number of rating access validation decisions",
	},
	[]string{"decision"},
)

var RatingWindowsOpened = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "rating_windows_opened_total",
		Help: "Total number of rating windows opened by ride completion events",
	},
)

var RatingWindowsExpired = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "rating_windows_expired_total",
		Help: "Total number of rating windows closed by the sweeper",
	},
)

// GatewayFallbacks labels: backend
var GatewayFallbacks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_fallbacks_total",
		Help: "Total number of degraded responses served by the gateway",
	},
	[]string{"backend"},
)
