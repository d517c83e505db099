package xab

import "math"

//////
// Confidence schedule.
//
// The thresholds and bonuses below follow the doubling trick: every bound
// computed with TPlus(t) holds simultaneously for all rounds in
// [TPlus(t)/2, TPlus(t)].
//////

const (
	// confidenceC is the constant c of the confidence terms.
	confidenceC = 0.1

	// thresholdCap caps δ̃ when computing the visit thresholds τ_h.
	thresholdCap = 0.5

	// bonusCap caps δ̃ when computing exploration bonuses.
	bonusCap = 1.0
)

// TPlus returns the smallest power of two greater than or equal to x.
// It returns 0 for x <= 0.
//
// Example:
//
//	TPlus(1)    // 1
//	TPlus(3)    // 4
//	TPlus(1000) // 1024
func TPlus(x int) int {
	if x <= 0 {
		return 0
	}

	p := 1
	for p < x {
		p <<= 1
	}

	return p
}

// Schedule computes the time dependent failure probabilities, visit
// thresholds and confidence bounds for fixed ν, ρ and δ.
type Schedule struct {
	nu, rho, delta float64

	// c1 = (ρ/(3ν))^(1/8)
	c1 float64
}

// NewSchedule returns the schedule for the given hyperparameters. It doesn't
// validate them, see Config.Validate.
func NewSchedule(nu, rho, delta float64) Schedule {
	return Schedule{
		nu:    nu,
		rho:   rho,
		delta: delta,
		c1:    math.Pow(rho/(3*nu), 1.0/8),
	}
}

// DeltaTilde returns min(cap, c1·δ/TPlus(iteration)). Before the first
// round TPlus is 0 and the result is cap.
func (s Schedule) DeltaTilde(iteration int, cap float64) float64 {
	tPlus := TPlus(iteration)
	if tPlus == 0 {
		return cap
	}

	return math.Min(cap, s.c1*s.delta/float64(tPlus))
}

// Tau returns the number of visits a cell at depth needs before selection
// may descend below it: ceil(c²·ln(1/δ̃)·ρ^(-2·depth)/ν²). Tau(0, ·) is 0.
func (s Schedule) Tau(depth int, deltaTilde float64) float64 {
	if depth == 0 {
		return 0
	}

	return math.Ceil(confidenceC * confidenceC * math.Log(1/deltaTilde) * math.Pow(s.rho, -2*float64(depth)) / (s.nu * s.nu))
}

// Thresholds returns τ_h for every depth in [0, depths) at the given
// iteration.
func (s Schedule) Thresholds(depths, iteration int) []float64 {
	deltaTilde := s.DeltaTilde(iteration, thresholdCap)

	tau := make([]float64, depths)
	for h := range tau {
		tau[h] = s.Tau(h, deltaTilde)
	}

	return tau
}

// UValue returns the optimistic bound of n: mean + bonus + ν·ρ^depth.
// Unvisited cells are unbounded.
func (s Schedule) UValue(n *Node, deltaTilde float64, bonus BonusFunc) float64 {
	if n.visits == 0 {
		return math.Inf(1)
	}

	return n.mean + bonus(n.visits, n.Variance(), math.Log(1/deltaTilde)) + s.nu*math.Pow(s.rho, float64(n.depth))
}

//////
// Available exploration bonuses.
//////

// HoeffdingBonus is the bonus used by HCT: sqrt(c²·ln(1/δ̃)/n).
//
// Example:
//
//	bonus := HoeffdingBonus(10, 0, math.Log(100))
func HoeffdingBonus(visits int, _ float64, logTerm float64) float64 {
	return math.Sqrt(confidenceC * confidenceC * logTerm / float64(visits))
}

// BernsteinBonus returns the bonus used by VHCT. It replaces the worst case
// range of the rewards by their empirical variance:
//
//	sqrt(2·c²·σ²·ln(1/δ̃)/n) + 3·b·c²·ln(1/δ̃)/n
//
// where b is the width of the reward range.
//
// Example:
//
//	engine, err := NewHCT(config, domain, NewBinaryPartition, WithBonus(BernsteinBonus(1)))
func BernsteinBonus(bound float64) BonusFunc {
	return func(visits int, variance, logTerm float64) float64 {
		c2 := confidenceC * confidenceC
		n := float64(visits)

		return math.Sqrt(2*c2*variance*logTerm/n) + 3*bound*c2*logTerm/n
	}
}
