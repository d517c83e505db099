package xab

import (
	"golang.org/x/exp/constraints"
)

// ProgressUpdate represents the state of an optimization run after a round.
type ProgressUpdate struct {
	// Round is the round that just completed, starting at 1.
	Round int

	// TotalRounds is the number of rounds the run will play.
	TotalRounds int

	// Point is the point sampled in this round.
	Point []float64

	// Reward is the reward observed at Point.
	Reward float64

	// BestPoint holds the best sampled point so far.
	BestPoint []float64

	// BestReward holds the reward observed at BestPoint.
	BestReward float64

	// TreeSize is the number of cells in the partition after the round.
	TreeSize int

	// TreeDepth is the depth of the deepest cell after the round.
	TreeDepth int
}

// ParameterRange defines the bounds of one dimension of the search domain.
//
// Type Parameter:
//   - T: The numeric type for this dimension (integer or float)
//
// Fields:
// - Min: The lower (inclusive) bound
// - Max: The upper (inclusive) bound
//
// Usage:
//
//	// Example 1: Unit interval
//	unit := ParameterRange[float64]{Min: 0, Max: 1}
//
//	// Example 2: Worker count from 1 to 32
//	workers := ParameterRange[int]{Min: 1, Max: 32}
//
// Validation:
// - Min must be less than or equal to Max
// - Both bounds must be finite
type ParameterRange[T constraints.Integer | constraints.Float] struct {
	// Min defines the lower bound of the dimension.
	Min T `json:"min" yaml:"min"`

	// Max defines the upper bound of the dimension.
	Max T `json:"max" yaml:"max"`
}

// Width returns Max - Min.
func (r ParameterRange[T]) Width() T { return r.Max - r.Min }

// Domain is the geometry of a cell: one closed interval per dimension.
type Domain []ParameterRange[float64]

// DomainOf converts ranges of any numeric type into a Domain.
//
// Usage:
//
//	domain := DomainOf(
//	    ParameterRange[int]{Min: 1024, Max: 1048576},
//	    ParameterRange[int]{Min: 1, Max: 32},
//	)
func DomainOf[T constraints.Integer | constraints.Float](ranges ...ParameterRange[T]) Domain {
	domain := make(Domain, len(ranges))
	for i, r := range ranges {
		domain[i] = ParameterRange[float64]{Min: float64(r.Min), Max: float64(r.Max)}
	}

	return domain
}

// ObjectiveFunc defines the signature of the function being maximized.
//
// Type Parameter:
//   - T: The numeric type of the point coordinates
//
// Parameters:
//   - point: One coordinate per domain dimension, in the same order as the
//     ranges given to Optimize.
//
// Returns:
// - float64: The reward observed at point (higher is better)
// - error: Non-nil if the evaluation failed; the run stops with this error
//
// Usage example:
//
//	objective := ObjectiveFunc[float64](func(point ...float64) (float64, error) {
//	    x := point[0]
//	    return -(x - 0.3) * (x - 0.3), nil
//	})
type ObjectiveFunc[T constraints.Integer | constraints.Float] func(point ...T) (float64, error)

// BonusFunc computes the exploration bonus of a cell from its statistics.
//
// Parameters:
// - visits: Number of rewards recorded in the cell (always > 0)
// - variance: Empirical variance of those rewards
// - logTerm: ln(1/δ̃) for the current round
//
// Built-in bonus functions:
// - HoeffdingBonus: HCT, variance independent
// - BernsteinBonus: VHCT, variance aware
type BonusFunc func(visits int, variance, logTerm float64) float64

// Config holds the hyperparameters of the engine and the settings of an
// optimization run.
//
// Fields explanation:
// - Nu, Rho: Smoothness constants of the objective (ν > 0, 0 < ρ < 1)
// - Delta: Failure probability of the confidence bounds (0 < δ < 1)
// - Bound: Range of the rewards, used by the variance aware bonus
// - Seed: Seed of the split dimension random source
// - Rounds: Number of rounds played by Optimize
// - VarianceAware: Build VHCT instead of HCT in Optimize
// - ProgressChan: Optional, receives one update per round
//
// Usage example:
//
//	config := DefaultConfig()
//	config.Rho = 0.5
//	config.Rounds = 500
//	config.Seed = 42
type Config struct {
	// Nu is the smoothness constant ν. Larger values add a larger depth
	// dependent bias to every confidence bound.
	Nu float64 `json:"nu" yaml:"nu" validate:"gt=0"`

	// Rho is the shrinkage rate ρ of the cell diameters per depth.
	Rho float64 `json:"rho" yaml:"rho" validate:"gt=0,lt=1"`

	// Delta is the failure probability δ.
	Delta float64 `json:"delta" yaml:"delta" validate:"gt=0,lt=1"`

	// Bound is the width of the reward range. Only VHCT uses it.
	Bound float64 `json:"bound" yaml:"bound" validate:"gt=0"`

	// Seed seeds the split dimension choice. Same seed, same rewards, same
	// points.
	Seed int64 `json:"seed" yaml:"seed"`

	// Rounds is the number of rounds Optimize plays.
	Rounds int `json:"rounds" yaml:"rounds" validate:"gte=0"`

	// VarianceAware selects VHCT in Optimize.
	VarianceAware bool `json:"variance_aware" yaml:"variance_aware"`

	// ProgressChan is used to send progress updates during Optimize.
	// If nil, no updates will be sent.
	ProgressChan chan<- ProgressUpdate `json:"-" yaml:"-" validate:"-"`
}
