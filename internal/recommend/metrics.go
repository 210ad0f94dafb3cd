package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	recommendationsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recommend_sets_total", Help: "Personalized sets served, by strategy"},
		[]string{"strategy"},
	)
	recommendationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "recommend_failures_total", Help: "Requests where both the scored path and the fallback failed"},
	)
	selectionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_selection_duration_seconds",
			Help:    "End-to-end selection time",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

func init() {
	prometheus.MustRegister(recommendationsServed, recommendationsFailed, selectionDuration)
}
