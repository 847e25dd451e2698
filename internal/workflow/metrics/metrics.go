package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the workflow engine.
type Metrics struct {
	TransitionsApplied  prometheus.Counter
	TransitionsRejected *prometheus.CounterVec
	ScoreAtTransition   prometheus.Histogram
}

// New creates and registers all workflow metrics.
func New() *Metrics {
	return &Metrics{
		TransitionsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simbahan_transitions_applied_total",
			Help: "Total number of accepted status transitions",
		}),
		TransitionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "simbahan_transitions_rejected_total",
			Help: "Total number of rejected transition attempts by error code",
		}, []string{"error_code"}),
		ScoreAtTransition: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "simbahan_heritage_score_at_transition",
			Help:    "Classifier score recomputed at each transition attempt",
			Buckets: []float64{0, 20, 50, 100, 150, 200, 300},
		}),
	}
}

// IncrementApplied increments the applied transition counter by 1.
func (m *Metrics) IncrementApplied() {
	m.TransitionsApplied.Inc()
}

// IncrementRejected increments the rejected counter for an error code.
func (m *Metrics) IncrementRejected(errorCode string) {
	m.TransitionsRejected.WithLabelValues(errorCode).Inc()
}

// ObserveScore records a recomputed classifier score.
func (m *Metrics) ObserveScore(score int) {
	m.ScoreAtTransition.Observe(float64(score))
}
