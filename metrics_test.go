package xab

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPrometheusCollector(reg, "xab_test")
	require.NoError(t, err)

	h, err := NewHCT(testConfig(), unitInterval, NewBinaryPartition, WithCollector(collector))
	require.NoError(t, err)

	for round := 1; round <= 10; round++ {
		playRound(t, h, round, func(x []float64) float64 { return x[0] })
	}

	p := h.Partition()
	assert.Equal(t, 10.0, testutil.ToFloat64(collector.rounds))
	assert.Equal(t, 5.0, testutil.ToFloat64(collector.refreshes), "iterations 0, 1, 2, 4 and 8")
	assert.Equal(t, float64((p.Size()-1)/2), testutil.ToFloat64(collector.expansions))
	assert.Equal(t, float64(p.Size()), testutil.ToFloat64(collector.nodes))
	assert.Equal(t, float64(p.Depth()-1), testutil.ToFloat64(collector.depth))

	count, err := testutil.GatherAndCount(reg, "xab_test_reward")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	t.Run("registering twice fails", func(t *testing.T) {
		_, err := NewPrometheusCollector(reg, "xab_test")
		assert.Error(t, err)
	})
}

func TestNoCollector(t *testing.T) {
	c := NewNoCollector()

	assert.NotPanics(t, func() {
		c.ObserveRound(1)
		c.ObserveRefresh()
		c.ObserveExpansion(3)
		c.ObserveTree(7, 2)
	})
}
