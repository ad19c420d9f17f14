package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "screentime_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Demand classification
	DemandClassifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_demand_classifications_total",
			Help: "Demand classifications by resulting level",
		},
		[]string{"level"},
	)

	DemandLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "screentime_demand_lookup_failures_total",
			Help: "Demand lookups that failed open because booking counts were unavailable",
		},
	)

	// Recommendations
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_recommendation_requests_total",
			Help: "Recommendation requests by generator and outcome",
		},
		[]string{"generator", "outcome"}, // outcome: success, error, timeout, cache_hit
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "screentime_recommendation_duration_seconds",
			Help:    "Suggestion generator latency in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 4, 8},
		},
		[]string{"generator"},
	)

	// Bookings
	BookingCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_booking_commits_total",
			Help: "Booking commit attempts by outcome",
		},
		[]string{"outcome"}, // created, conflict, error
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screentime_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)
