package ledger

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-registry/internal/registry"
)

// callCount reads registry_calls_total for one op/outcome pair from the
// default registry the promauto collectors register with.
func callCount(t *testing.T, op, outcome string) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "registry_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["op"] == op && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestCommitObservesMarshalFailure(t *testing.T) {
	l := openLedger(t, &memJournal{})
	const op = "marshal-failure-test"

	before := callCount(t, op, "error")

	// A func value has no JSON encoding, so the payload marshal fails after
	// the transition succeeded; the call must count as an error and leave
	// the ledger untouched.
	err := l.commit(context.Background(), op, deployer, func() {},
		func(r *registry.Registry, call registry.Call) error { return nil })
	require.Error(t, err)

	assert.Equal(t, uint64(1), l.Height(), "failed call must not advance height")
	assert.Equal(t, before+1, callCount(t, op, "error"))
}
