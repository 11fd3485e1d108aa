package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduler/internal/metrics"
)

func TestCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	require.NoError(t, err)

	collector.ObserveSimulation("FCFS", metrics.OutcomeSuccess, 0.001)
	collector.ObserveSimulation("FCFS", metrics.OutcomeSuccess, 0.002)
	collector.ObserveSimulation("RoundRobin", metrics.OutcomeRejected, 0)
	collector.ObserveCacheLookup(true)
	collector.ObserveSchedule("FCFS", 9, 3.5)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "cpu_scheduler_simulations_total")
	assert.Contains(t, names, "cpu_scheduler_cache_lookups_total")
	assert.Contains(t, names, "cpu_scheduler_last_average_waiting_time")

	count, err := testutil.GatherAndCount(registry, "cpu_scheduler_simulations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per algorithm/outcome pair")

	_, err = metrics.NewCollector(registry)
	assert.Error(t, err, "registering twice on the same registry fails")
}
