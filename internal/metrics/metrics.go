package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the lending service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Contributions      prometheus.Counter
	StateTransitions   *prometheus.CounterVec
	Payouts            *prometheus.CounterVec
	ReputationUpdates  *prometheus.CounterVec
	RejectedOperations *prometheus.CounterVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in main
// and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Contributions: f.NewCounter(prometheus.CounterOpts{
			Name: "crowdlending_contributions_total",
			Help: "Total number of accepted contributions",
		}),
		StateTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crowdlending_state_transitions_total",
			Help: "Agreement state transitions by target state",
		}, []string{"state"}),
		Payouts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crowdlending_payouts_total",
			Help: "Payouts queued by kind",
		}, []string{"kind"}),
		ReputationUpdates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crowdlending_reputation_updates_total",
			Help: "Reputation score updates by kind and direction",
		}, []string{"kind", "direction"}),
		RejectedOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "crowdlending_rejected_operations_total",
			Help: "Lending operations rejected by a precondition",
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementContributions() {
	if m == nil {
		return
	}
	m.Contributions.Inc()
}

func (m *Metrics) IncrementStateTransition(state string) {
	if m == nil {
		return
	}
	m.StateTransitions.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementPayout(kind string) {
	if m == nil {
		return
	}
	m.Payouts.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementReputationUpdate(kind, direction string) {
	if m == nil {
		return
	}
	m.ReputationUpdates.WithLabelValues(kind, direction).Inc()
}

func (m *Metrics) IncrementRejected(operation string) {
	if m == nil {
		return
	}
	m.RejectedOperations.WithLabelValues(operation).Inc()
}
