package xab

import (
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Option configures an HCT engine.
type Option func(h *HCT)

// WithLogger sets the logger. Expansions and refresh rounds are logged at
// debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *HCT) {
		h.logger = logger
	}
}

// WithCollector sets the metrics collector.
func WithCollector(collector Collector) Option {
	return func(h *HCT) {
		if collector != nil {
			h.metrics = collector
		}
	}
}

// WithBonus replaces the exploration bonus.
func WithBonus(bonus BonusFunc) Option {
	return func(h *HCT) {
		if bonus != nil {
			h.bonus = bonus
		}
	}
}

type roundState int

const (
	awaitingPull roundState = iota
	awaitingReward
)

// HCT is the High Confidence Tree engine. It is not safe for concurrent use:
// callers serialize Pull/ReceiveReward pairs.
type HCT struct {
	partition Partition
	schedule  Schedule
	bonus     BonusFunc

	// iteration counts completed rounds.
	iteration int
	state     roundState

	// state of the round in flight
	tau       []float64
	node      *Node
	path      []*Node
	lastPoint []float64

	logger  zerolog.Logger
	metrics Collector
}

// NewHCT builds an engine over domain. recipe builds the partition, seeded
// from config.Seed.
//
// Parameters:
// - config: Hyperparameters; Nu, Rho, Delta and Bound are validated
// - domain: Geometry of the root cell, required
// - recipe: Partition constructor, required (NewBinaryPartition)
// - options: WithLogger, WithCollector, WithBonus
//
// Returns ErrValidation if any of them is missing or out of range.
//
// Usage example:
//
//	engine, err := NewHCT(DefaultConfig(), Domain{{Min: 0, Max: 1}}, NewBinaryPartition)
//	for t := 1; t <= 100; t++ {
//	    point, _ := engine.Pull(t)
//	    _ = engine.ReceiveReward(t, f(point))
//	}
func NewHCT(config Config, domain Domain, recipe PartitionFunc, options ...Option) (*HCT, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if domain == nil {
		return nil, validationErrorf("a domain is required")
	}
	if recipe == nil {
		return nil, validationErrorf("a partition recipe is required")
	}
	if err := validateDomain(domain); err != nil {
		return nil, err
	}

	partition, err := recipe(domain, rand.New(rand.NewSource(uint64(config.Seed))))
	if err != nil {
		return nil, err
	}
	if partition == nil || partition.Root() == nil {
		return nil, validationErrorf("partition recipe returned no root")
	}

	h := &HCT{
		partition: partition,
		schedule:  NewSchedule(config.Nu, config.Rho, config.Delta),
		bonus:     HoeffdingBonus,
		logger:    zerolog.Nop(),
		metrics:   NewNoCollector(),
	}
	for _, option := range options {
		option(h)
	}

	return h, nil
}

// NewVHCT builds the variance aware engine: HCT with BernsteinBonus using
// config.Bound as the width of the reward range.
func NewVHCT(config Config, domain Domain, recipe PartitionFunc, options ...Option) (*HCT, error) {
	options = append([]Option{WithBonus(BernsteinBonus(config.Bound))}, options...)

	return NewHCT(config, domain, recipe, options...)
}

// Pull selects the cell to sample in round t and returns its midpoint.
// t must be the number of completed rounds plus one and the previous round
// must have received its reward, otherwise ErrProtocol is returned.
func (h *HCT) Pull(t int) ([]float64, error) {
	if h.state != awaitingPull {
		return nil, protocolErrorf("pull(%d) while round %d awaits its reward", t, h.iteration+1)
	}
	if t != h.iteration+1 {
		return nil, protocolErrorf("pull(%d) out of order, expected round %d", t, h.iteration+1)
	}

	h.tau = h.schedule.Thresholds(h.partition.Depth(), h.iteration)

	node, path := optTraverse(h.partition, h.tau)
	if !node.IsLeaf() && float64(node.visits) >= h.tau[node.depth] {
		if child := unvisitedChild(h.partition, node); child != nil {
			path = append(path, node)
			node = child
		}
	}

	h.node = node
	h.path = path
	h.lastPoint = node.Point()
	h.state = awaitingReward

	return h.LastPoint(), nil
}

// ReceiveReward records the reward of round t and updates the tree.
func (h *HCT) ReceiveReward(t int, reward float64) error {
	if h.state != awaitingReward {
		return protocolErrorf("reward for round %d without a pull", t)
	}
	if t != h.iteration+1 {
		return protocolErrorf("reward for round %d, expected round %d", t, h.iteration+1)
	}
	if math.IsNaN(reward) || math.IsInf(reward, 0) {
		return validationErrorf("reward for round %d is not finite: %v", t, reward)
	}

	deltaTilde := h.schedule.DeltaTilde(h.iteration, bonusCap)

	if h.iteration == TPlus(h.iteration) {
		fullUValueSweep(h.partition, h.schedule, deltaTilde, h.bonus)
		fullBackwardSweep(h.partition)

		h.metrics.ObserveRefresh()
		h.logger.Debug().Int("round", t).Float64("delta_tilde", deltaTilde).Msg("refreshed confidence bounds")
	}

	h.iteration++

	node := h.node
	h.path = append(h.path, node)
	node.record(reward)
	node.uvalue = h.schedule.UValue(node, deltaTilde, h.bonus)
	fullBackwardSweep(h.partition)

	if shouldExpand(node, h.tau) {
		h.partition.Split(node)

		h.metrics.ObserveExpansion(node.depth)
		h.logger.Debug().
			Int("round", t).
			Int("depth", node.depth).
			Int("index", node.index).
			Int("visits", node.visits).
			Msg("expanded cell")
	}

	h.metrics.ObserveRound(reward)
	h.metrics.ObserveTree(h.partition.Size(), h.partition.Depth()-1)

	h.node = nil
	h.state = awaitingPull

	return nil
}

// LastPoint returns the point returned by the latest Pull, nil before the
// first one.
func (h *HCT) LastPoint() []float64 {
	if h.lastPoint == nil {
		return nil
	}

	point := make([]float64, len(h.lastPoint))
	copy(point, h.lastPoint)

	return point
}

// Iteration returns the number of completed rounds.
func (h *HCT) Iteration() int { return h.iteration }

// Partition returns the partition tree. It must only be read.
func (h *HCT) Partition() Partition { return h.partition }

// Path returns the cells visited by the latest round, root first, ending
// with the sampled cell.
func (h *HCT) Path() []*Node {
	out := make([]*Node, len(h.path))
	copy(out, h.path)

	return out
}

// Dot renders the partition tree in Graphviz DOT format.
func (h *HCT) Dot() (string, error) { return ToDot(h.partition) }
