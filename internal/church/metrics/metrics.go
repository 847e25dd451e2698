// Package metrics exposes Prometheus counters for church record operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the church service counters. A nil *Metrics is valid and
// every method on it is a no-op, so tests can skip registration.
type Metrics struct {
	created       prometheus.Counter
	profileUpdate prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		created: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simbahan_churches_created_total",
			Help: "Total church records created.",
		}),
		profileUpdate: promauto.NewCounter(prometheus.CounterOpts{
			Name: "simbahan_church_profile_updates_total",
			Help: "Total church profile updates applied.",
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.created.Inc()
}

func (m *Metrics) IncrementProfileUpdated() {
	if m == nil {
		return
	}
	m.profileUpdate.Inc()
}
