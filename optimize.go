package xab

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

//////
// Exported functionalities.
//////

// Algorithm is the round protocol shared by every X-armed bandit engine.
//
// Pull(t) and ReceiveReward(t, ·) alternate strictly with t = 1, 2, 3, ...
type Algorithm interface {
	Pull(t int) ([]float64, error)
	ReceiveReward(t int, reward float64) error
	LastPoint() []float64
}

// Round is one entry of the history of a run.
type Round struct {
	T      int
	Point  []float64
	Reward float64
}

// Result is the outcome of Optimize.
//
// Type Parameter:
//   - T: The numeric type of the point coordinates
type Result[T constraints.Integer | constraints.Float] struct {
	// BestPoint is the sampled point with the highest reward.
	BestPoint []T

	// BestReward is the reward observed at BestPoint.
	BestReward float64

	// LastPoint is the point sampled in the final round.
	LastPoint []T

	// History holds every round in order.
	History []Round
}

// Optimize maximizes objective over the domain described by ranges with
// HCT, or VHCT when config.VarianceAware is set.
//
// Type Parameter:
//   - T: The numeric type for the coordinates (integer or float)
//
// Parameters:
// - config: Config controlling the engine and the number of rounds
// - objective: The function whose maximum you are looking for
// - ranges: One ParameterRange per dimension
//
// Returns:
// - Result[T]: Best point found and the full history
// - error: ErrValidation for a bad config or domain, or the objective error
//
// Usage example:
//
//	config := DefaultConfig()
//	config.Rounds = 500
//
//	result, err := Optimize(
//	    config,
//	    func(point ...float64) (float64, error) {
//	        return math.Sin(13*point[0]) * math.Sin(27*point[0]), nil
//	    },
//	    ParameterRange[float64]{Min: 0, Max: 1},
//	)
//
// How it works:
// 1. Builds the engine over a BinaryPartition of the domain
// 2. For each round:
//   - Pulls the midpoint of the most promising cell
//   - Evaluates the objective there
//   - Feeds the reward back to the engine
//   - Sends a ProgressUpdate if config.ProgressChan is set
//
// 3. Returns the best sampled point
//
// Important notes:
// - Rewards are maximized; negate costs before returning them
// - Integer coordinates are the rounded cell midpoints
// - Runs in the calling goroutine, one objective call per round
func Optimize[T constraints.Integer | constraints.Float](
	config Config,
	objective ObjectiveFunc[T],
	ranges ...ParameterRange[T],
) (Result[T], error) {
	if objective == nil {
		return Result[T]{}, validationErrorf("an objective is required")
	}

	newEngine := NewHCT
	if config.VarianceAware {
		newEngine = NewVHCT
	}

	engine, err := newEngine(config, DomainOf(ranges...), NewBinaryPartition)
	if err != nil {
		return Result[T]{}, err
	}

	history, err := run(engine, func(point []float64) (float64, error) {
		return objective(convertPoint[T](point)...)
	}, config.Rounds, config.ProgressChan, engine.Partition())
	if err != nil {
		return Result[T]{}, err
	}

	result := Result[T]{
		LastPoint: convertPoint[T](engine.LastPoint()),
		History:   history,
	}
	if best, ok := bestRound(history); ok {
		result.BestPoint = convertPoint[T](best.Point)
		result.BestReward = best.Reward
	}

	return result, nil
}

// Run plays rounds rounds of algo against objective and returns the
// history. progress may be nil; updates are dropped when it is full. Tree
// statistics are reported when algo exposes its Partition.
func Run(algo Algorithm, objective func(point []float64) (float64, error), rounds int, progress chan<- ProgressUpdate) ([]Round, error) {
	var partition Partition
	if tree, ok := algo.(interface{ Partition() Partition }); ok {
		partition = tree.Partition()
	}

	return run(algo, objective, rounds, progress, partition)
}

func run(algo Algorithm, objective func(point []float64) (float64, error), rounds int, progress chan<- ProgressUpdate, partition Partition) ([]Round, error) {
	history := make([]Round, 0, rounds)

	var best Round
	for t := 1; t <= rounds; t++ {
		point, err := algo.Pull(t)
		if err != nil {
			return history, err
		}

		reward, err := objective(point)
		if err != nil {
			return history, errors.Wrapf(err, "evaluate objective in round %d", t)
		}

		if err := algo.ReceiveReward(t, reward); err != nil {
			return history, err
		}

		round := Round{T: t, Point: point, Reward: reward}
		history = append(history, round)
		if t == 1 || reward > best.Reward {
			best = round
		}

		if progress != nil {
			update := ProgressUpdate{
				Round:       t,
				TotalRounds: rounds,
				Point:       point,
				Reward:      reward,
				BestPoint:   best.Point,
				BestReward:  best.Reward,
			}
			if partition != nil {
				update.TreeSize = partition.Size()
				update.TreeDepth = partition.Depth() - 1
			}

			select {
			case progress <- update:
			default:
				// Skip update if channel is full.
			}
		}
	}

	return history, nil
}

func bestRound(history []Round) (Round, bool) {
	if len(history) == 0 {
		return Round{}, false
	}

	best := history[0]
	for _, r := range history[1:] {
		if r.Reward > best.Reward {
			best = r
		}
	}

	return best, true
}
