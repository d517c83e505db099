// Package xab provides continuous-armed ("X-armed") bandit optimization
// with hierarchical partitioning. It repeatedly picks a point of a bounded
// domain, observes a noisy reward there and concentrates its samples around
// the maximum, without gradients and with anytime confidence guarantees.
//
// # Features
//
// The package includes the following key features:
//
//   - HCT: High Confidence Tree, a binary partition tree explored with
//     optimistic upper confidence bounds
//   - VHCT: the variance aware variant, using empirical Bernstein bonuses
//   - Doubling trick schedule: thresholds and bounds valid for all rounds,
//     refreshed tree-wide only on power of two rounds
//   - Reproducible: the only randomness, the split dimension, comes from a
//     seeded source
//   - Generic driver: optimize over integer or floating point domains
//   - Observability: zerolog logging, Prometheus metrics, Graphviz export of
//     the tree and CSV export of the history
//
// # Round protocol
//
// Every engine implements Algorithm. Rounds are numbered from 1 and Pull and
// ReceiveReward alternate strictly:
//
//	engine, err := NewHCT(DefaultConfig(), Domain{{Min: 0, Max: 1}}, NewBinaryPartition)
//	if err != nil {
//	    return err
//	}
//
//	for t := 1; t <= 1000; t++ {
//	    point, err := engine.Pull(t)
//	    if err != nil {
//	        return err
//	    }
//
//	    if err := engine.ReceiveReward(t, f(point)); err != nil {
//	        return err
//	    }
//	}
//
// Calling them out of order returns ErrProtocol. Invalid hyperparameters, a
// missing domain or a missing partition recipe return ErrValidation.
//
// # Configuration
//
// The Config struct holds the hyperparameters:
//
//	type Config struct {
//	    Nu            float64 // Smoothness constant ν > 0
//	    Rho           float64 // Shrinkage rate 0 < ρ < 1
//	    Delta         float64 // Failure probability 0 < δ < 1
//	    Bound         float64 // Width of the reward range (VHCT)
//	    Seed          int64   // Split dimension seed
//	    Rounds        int     // Rounds played by Optimize
//	    VarianceAware bool    // Use VHCT in Optimize
//	    ProgressChan  chan<- ProgressUpdate
//	}
//
// Recommended settings:
//   - Nu: 1 (increase for rougher objectives)
//   - Rho: 0.5-0.9 (higher = slower shrinking cells, more exploration)
//   - Delta: 0.01
//
// LoadConfig reads the same fields from a YAML or JSON file and XAB_*
// environment variables.
//
// # Thread Safety
//
// Engines are not safe for concurrent use. A single goroutine must own an
// engine; drivers sharing one must serialize Pull/ReceiveReward pairs.
package xab
