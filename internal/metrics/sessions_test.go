// SPDX-License-Identifier: MIT

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestSessionCountersRegistered(t *testing.T) {
	IncSessionStarted()
	IncSessionEnded()
	SetActiveSessions(3)
	ObserveEvent(0.2, 0.4, 0.9)
	IncEngineFailure("event", "closed")
	AddSweeperEvictions(2)

	started := gatherFamily(t, "halo_sessions_started_total")
	require.NotNil(t, started)
	assert.GreaterOrEqual(t, started.GetMetric()[0].GetCounter().GetValue(), 1.0)

	held := gatherFamily(t, "halo_sessions_held")
	require.NotNil(t, held)
	assert.Equal(t, 3.0, held.GetMetric()[0].GetGauge().GetValue())

	signals := gatherFamily(t, "halo_event_signal_value")
	require.NotNil(t, signals)
	assert.Len(t, signals.GetMetric(), 3) // one series per signal
}

func TestEngineFailureLabels(t *testing.T) {
	IncEngineFailure("start", "duplicate")

	mf := gatherFamily(t, "halo_engine_failures_total")
	require.NotNil(t, mf)

	found := false
	for _, m := range mf.GetMetric() {
		labels := map[string]string{}
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		if labels["op"] == "start" && labels["reason"] == "duplicate" {
			found = true
		}
	}
	assert.True(t, found, "expected start/duplicate series")
}
