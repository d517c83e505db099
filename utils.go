package xab

import (
	"math"

	"golang.org/x/exp/constraints"
)

//////
// Helper functions.
//////

// midpoint returns the center of r.
func midpoint(r ParameterRange[float64]) float64 {
	return (r.Min + r.Max) / 2
}

// convertPoint converts a sampled point to the coordinate type of the
// objective. Integer coordinates are rounded to the nearest integer.
//
// Parameters:
// - point: Midpoint of the selected cell
//
// Returns:
// - []T: New slice with one coordinate per dimension
func convertPoint[T constraints.Integer | constraints.Float](point []float64) []T {
	out := make([]T, len(point))
	for i, v := range point {
		switch any(out[i]).(type) {
		case float32, float64:
			out[i] = T(v)
		default:
			out[i] = T(math.Round(v))
		}
	}

	return out
}
