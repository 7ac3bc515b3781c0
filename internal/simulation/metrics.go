package simulation

import (
	"math"

	"github.com/nvandessel/jiggle/internal/engine"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are Prometheus collectors updated by a Runner after every
// transition. They are labelled by run name so concurrent chains can share
// one registry.
type Metrics struct {
	Transitions *prometheus.CounterVec
	NewSites    *prometheus.CounterVec
	LogProb     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jiggle",
			Name:      "transitions_total",
			Help:      "Metropolis-Hastings transitions by outcome.",
		}, []string{"run", "result"}),
		NewSites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jiggle",
			Name:      "new_sites_total",
			Help:      "Sites first declared during a transition.",
		}, []string{"run"}),
		LogProb: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "jiggle",
			Name:      "log_probability",
			Help:      "Joint log probability of the current state; -Inf is reported as NaN.",
		}, []string{"run"}),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.NewSites, m.LogProb)
	}
	return m
}

func (m *Metrics) observe(run string, step engine.Step) {
	if m == nil {
		return
	}
	result := "rejected"
	current := step.Before
	if step.Accepted {
		result = "accepted"
		current = step.After
	}
	m.Transitions.WithLabelValues(run, result).Inc()
	if step.NewSites > 0 {
		m.NewSites.WithLabelValues(run).Add(float64(step.NewSites))
	}
	if math.IsInf(current, -1) {
		current = math.NaN()
	}
	m.LogProb.WithLabelValues(run).Set(current)
}
