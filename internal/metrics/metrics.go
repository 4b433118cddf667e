package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// SampledItems records the size of every question set handed out.
	SampledItems = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "placement_sampled_items",
			Help:    "Number of questions returned per sampling request",
			Buckets: []float64{3, 6, 12, 18, 30, 45, 60},
		},
		[]string{"mode"},
	)

	// Placements counts graded tests by scheme and resulting level.
	Placements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placement_results_total",
			Help: "Total number of graded tests by scheme and level",
		},
		[]string{"scheme", "level"},
	)

	// QuestionCacheLookups counts question cache hits and misses.
	QuestionCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placement_question_cache_lookups_total",
			Help: "Question cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SampledItems)
		prometheus.MustRegister(Placements)
		prometheus.MustRegister(QuestionCacheLookups)
	})
}
