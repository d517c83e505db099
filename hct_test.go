package xab

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/thalesfsp/xab/objective"
)

func testConfig() Config {
	return Config{Nu: 1, Rho: 0.75, Delta: 0.01, Bound: 1, Seed: 1, Rounds: 100}
}

var unitInterval = Domain{{Min: 0, Max: 1}}

type countingCollector struct {
	rounds     int
	refreshes  int
	expansions []int
	nodes      int
	depth      int
}

func (c *countingCollector) ObserveRound(float64)         { c.rounds++ }
func (c *countingCollector) ObserveRefresh()              { c.refreshes++ }
func (c *countingCollector) ObserveExpansion(depth int)   { c.expansions = append(c.expansions, depth) }
func (c *countingCollector) ObserveTree(nodes, depth int) { c.nodes, c.depth = nodes, depth }

func playRound(t *testing.T, h *HCT, round int, f func([]float64) float64) []float64 {
	t.Helper()

	point, err := h.Pull(round)
	require.NoError(t, err)
	require.NoError(t, h.ReceiveReward(round, f(point)))

	return point
}

func TestNewHCTValidation(t *testing.T) {
	failing := func(Domain, *rand.Rand) (Partition, error) {
		return nil, errors.Wrap(ErrValidation, "no partition today")
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		domain Domain
		recipe PartitionFunc
	}{
		{"domain without partition recipe", nil, unitInterval, nil},
		{"partition recipe without domain", nil, nil, NewBinaryPartition},
		{"empty domain", nil, Domain{}, NewBinaryPartition},
		{"inverted range", nil, Domain{{Min: 1, Max: 0}}, NewBinaryPartition},
		{"non positive nu", func(c *Config) { c.Nu = 0 }, unitInterval, NewBinaryPartition},
		{"rho of one", func(c *Config) { c.Rho = 1 }, unitInterval, NewBinaryPartition},
		{"rho of zero", func(c *Config) { c.Rho = 0 }, unitInterval, NewBinaryPartition},
		{"delta of zero", func(c *Config) { c.Delta = 0 }, unitInterval, NewBinaryPartition},
		{"delta of one", func(c *Config) { c.Delta = 1 }, unitInterval, NewBinaryPartition},
		{"failing recipe", nil, unitInterval, failing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			if tt.mutate != nil {
				tt.mutate(&config)
			}

			h, err := NewHCT(config, tt.domain, tt.recipe)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, h)

			v, err := NewVHCT(config, tt.domain, tt.recipe)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, v)
		})
	}
}

func TestHCTProtocol(t *testing.T) {
	newEngine := func(t *testing.T) *HCT {
		t.Helper()

		h, err := NewHCT(testConfig(), unitInterval, NewBinaryPartition)
		require.NoError(t, err)

		return h
	}

	t.Run("pull of round two first", func(t *testing.T) {
		h := newEngine(t)

		_, err := h.Pull(2)
		assert.ErrorIs(t, err, ErrProtocol)
		assert.Equal(t, 0, h.Iteration())

		point, err := h.Pull(1)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5}, point)
	})

	t.Run("two pulls in a row", func(t *testing.T) {
		h := newEngine(t)

		_, err := h.Pull(1)
		require.NoError(t, err)

		_, err = h.Pull(1)
		assert.ErrorIs(t, err, ErrProtocol)
		_, err = h.Pull(2)
		assert.ErrorIs(t, err, ErrProtocol)
	})

	t.Run("reward without a pull", func(t *testing.T) {
		h := newEngine(t)

		assert.ErrorIs(t, h.ReceiveReward(1, 1), ErrProtocol)
		assert.Equal(t, 0, h.Iteration())
		assert.Equal(t, 0, h.Partition().Root().Visits())
	})

	t.Run("reward for the wrong round", func(t *testing.T) {
		h := newEngine(t)

		_, err := h.Pull(1)
		require.NoError(t, err)

		assert.ErrorIs(t, h.ReceiveReward(2, 1), ErrProtocol)
		assert.NoError(t, h.ReceiveReward(1, 1))
		assert.Equal(t, 1, h.Iteration())
	})

	t.Run("reward that is not a number", func(t *testing.T) {
		h := newEngine(t)

		_, err := h.Pull(1)
		require.NoError(t, err)

		assert.ErrorIs(t, h.ReceiveReward(1, math.NaN()), ErrValidation)
		assert.ErrorIs(t, h.ReceiveReward(1, math.Inf(1)), ErrValidation)
		assert.Equal(t, 0, h.Partition().Root().Visits())

		assert.NoError(t, h.ReceiveReward(1, 0.3))
		assert.Equal(t, 0.3, h.Partition().Root().MeanReward())
	})
}

func TestHCTLastPoint(t *testing.T) {
	h, err := NewHCT(testConfig(), unitInterval, NewBinaryPartition)
	require.NoError(t, err)

	assert.Nil(t, h.LastPoint())

	point, err := h.Pull(1)
	require.NoError(t, err)
	assert.Equal(t, point, h.LastPoint())

	point[0] = 42
	assert.Equal(t, []float64{0.5}, h.LastPoint(), "callers get a copy")
}

// TestHCTConstantReward plays 100 rounds of a constant reward on [0, 1]. With
// ν = 1, ρ = 0.75 and δ = 0.01 the thresholds stay small, so the tree grows
// breadth first from the middle of the interval.
func TestHCTConstantReward(t *testing.T) {
	collector := &countingCollector{}
	h, err := NewHCT(testConfig(), unitInterval, NewBinaryPartition, WithCollector(collector))
	require.NoError(t, err)

	var points [][]float64
	for round := 1; round <= 100; round++ {
		points = append(points, playRound(t, h, round, func([]float64) float64 { return 1 }))
	}

	assert.Equal(t, [][]float64{{0.5}, {0.75}, {0.25}}, points[:3])

	p := h.Partition()
	assert.LessOrEqual(t, p.Depth()-1, 7)
	assert.Equal(t, 2*len(collector.expansions)+1, p.Size())
	assert.Equal(t, 100, collector.rounds)
	assert.Equal(t, p.Size(), collector.nodes)
	assert.Equal(t, p.Depth()-1, collector.depth)

	// Refreshes at iterations 0, 1, 2, 4, 8, 16, 32 and 64.
	assert.Equal(t, 8, collector.refreshes)

	visits := 0
	for id := NodeID(1); int(id) <= p.Size(); id++ {
		n := p.Get(id)
		if n.Visits() == 0 {
			continue
		}

		visits += n.Visits()
		assert.Equal(t, 1.0, n.MeanReward(), "%v", n)
		assert.Equal(t, 0.0, n.Variance(), "%v", n)
		if !n.IsLeaf() {
			assert.LessOrEqual(t, n.BValue(), n.UValue(), "%v", n)
		}
	}
	assert.Equal(t, 100, visits, "every reward lands in exactly one cell")
}

func TestHCTPath(t *testing.T) {
	h, err := NewHCT(testConfig(), unitInterval, NewBinaryPartition)
	require.NoError(t, err)

	for round := 1; round <= 20; round++ {
		point := playRound(t, h, round, func(x []float64) float64 { return x[0] })

		path := h.Path()
		require.NotEmpty(t, path)
		assert.Same(t, h.Partition().Root(), path[0])
		assert.Equal(t, point, path[len(path)-1].Point())
		for i := 1; i < len(path); i++ {
			assert.Equal(t, path[i-1].ID(), path[i].Parent())
		}
	}
}

func TestHCTDeterminism(t *testing.T) {
	domain := Domain{{Min: -5, Max: 5}, {Min: -5, Max: 5}}
	f := objective.Himmelblau{}

	run := func(t *testing.T, variant func(Config, Domain, PartitionFunc, ...Option) (*HCT, error)) ([]Round, *HCT) {
		t.Helper()

		config := testConfig()
		config.Seed = 42

		h, err := variant(config, domain, NewBinaryPartition)
		require.NoError(t, err)

		history, err := Run(h, func(x []float64) (float64, error) { return f.F(x), nil }, 300, nil)
		require.NoError(t, err)

		return history, h
	}

	for name, variant := range map[string]func(Config, Domain, PartitionFunc, ...Option) (*HCT, error){
		"HCT":  NewHCT,
		"VHCT": NewVHCT,
	} {
		t.Run(name, func(t *testing.T) {
			a, ha := run(t, variant)
			b, hb := run(t, variant)

			if diff := cmp.Diff(a, b); diff != "" {
				t.Errorf("histories differ (-first +second):\n%s", diff)
			}

			require.Equal(t, ha.Partition().Size(), hb.Partition().Size())
			for id := NodeID(1); int(id) <= ha.Partition().Size(); id++ {
				if diff := cmp.Diff(ha.Partition().Get(id).Ranges(), hb.Partition().Get(id).Ranges()); diff != "" {
					t.Errorf("cell %d differs (-first +second):\n%s", id, diff)
				}
			}
		})
	}
}

func TestHCTGarland(t *testing.T) {
	f := objective.Garland{}

	for name, variant := range map[string]func(Config, Domain, PartitionFunc, ...Option) (*HCT, error){
		"HCT":  NewHCT,
		"VHCT": NewVHCT,
	} {
		t.Run(name, func(t *testing.T) {
			h, err := variant(testConfig(), unitInterval, NewBinaryPartition)
			require.NoError(t, err)

			history, err := Run(h, func(x []float64) (float64, error) { return f.F(x), nil }, 1000, nil)
			require.NoError(t, err)

			best, ok := bestRound(history)
			require.True(t, ok)
			assert.Less(t, f.Max()-best.Reward, 0.05)
		})
	}
}

func TestVHCTUsesVarianceAwareBonus(t *testing.T) {
	h, err := NewVHCT(testConfig(), unitInterval, NewBinaryPartition)
	require.NoError(t, err)

	// The first round runs with δ̃ = 1 and no bonus at all.
	playRound(t, h, 1, func([]float64) float64 { return 1 })
	playRound(t, h, 2, func([]float64) float64 { return 1 })

	path := h.Path()
	sampled := path[len(path)-1]
	s := NewSchedule(1, 0.75, 0.01)
	deltaTilde := s.DeltaTilde(1, bonusCap)

	assert.Equal(t, s.UValue(sampled, deltaTilde, BernsteinBonus(1)), sampled.UValue())
	assert.NotEqual(t, s.UValue(sampled, deltaTilde, HoeffdingBonus), sampled.UValue())
}

func TestHCTLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	h, err := NewHCT(testConfig(), unitInterval, NewBinaryPartition, WithLogger(logger))
	require.NoError(t, err)

	for round := 1; round <= 5; round++ {
		playRound(t, h, round, func([]float64) float64 { return 0.5 })
	}

	assert.Contains(t, buf.String(), "expanded cell")
	assert.Contains(t, buf.String(), "refreshed confidence bounds")
}

func TestHCTDot(t *testing.T) {
	h, err := NewHCT(testConfig(), unitInterval, NewBinaryPartition)
	require.NoError(t, err)

	for round := 1; round <= 3; round++ {
		playRound(t, h, round, func([]float64) float64 { return 0.5 })
	}

	dot, err := h.Dot()
	require.NoError(t, err)
	assert.Contains(t, dot, "d0_i1")
	assert.Contains(t, dot, "d1_i2")
	assert.Contains(t, dot, "->")
}
