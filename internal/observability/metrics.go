package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
	apiErrorsTotal       *prometheus.CounterVec
	lessonsGenerated     prometheus.Counter
	gradeUpdatesTotal    *prometheus.CounterVec
	dashboardCacheEvents *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sirius_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sirius_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sirius_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		lessonsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sirius_lessons_generated_total",
			Help: "Number of lessons created by calendar generation.",
		})

		gradeUpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sirius_grade_updates_total",
			Help: "Score writes grouped by outcome.",
		}, []string{"outcome"})

		dashboardCacheEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sirius_dashboard_cache_events_total",
			Help: "Dashboard cache lookups grouped by result.",
		}, []string{"result"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			lessonsGenerated,
			gradeUpdatesTotal,
			dashboardCacheEvents,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// LessonsGenerated counts lessons produced by distribution.
func LessonsGenerated() prometheus.Counter {
	RegisterMetrics()
	return lessonsGenerated
}

// GradeUpdates counts score writes by outcome (applied, rejected, bulk).
func GradeUpdates() *prometheus.CounterVec {
	RegisterMetrics()
	return gradeUpdatesTotal
}

// DashboardCache counts dashboard cache hits and misses.
func DashboardCache() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardCacheEvents
}
