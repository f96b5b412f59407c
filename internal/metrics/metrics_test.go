package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementContributions()
	m.IncrementContributions()
	m.IncrementStateTransition("exchanging_to_fiat")
	m.IncrementPayout("borrower_disbursement")
	m.IncrementReputationUpdate("community", "burn")
	m.IncrementRejected("contribute")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Contributions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateTransitions.WithLabelValues("exchanging_to_fiat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payouts.WithLabelValues("borrower_disbursement")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReputationUpdates.WithLabelValues("community", "burn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedOperations.WithLabelValues("contribute")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementContributions()
		m.IncrementStateTransition("closed")
		m.IncrementPayout("team_fee")
		m.IncrementReputationUpdate("local_node", "increment")
		m.IncrementRejected("close")
	})
}

func TestNewOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
