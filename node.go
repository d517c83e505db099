package xab

import (
	"fmt"
	"math"
)

// Node is a cell of the partition. Statistics are only changed by the engine
// that owns the partition.
type Node struct {
	id     NodeID
	depth  int
	index  int
	ranges Domain

	parent   NodeID
	children [2]NodeID

	visits int
	mean   float64
	m2     float64

	uvalue float64
	bvalue float64
}

func (n *Node) init(depth, index int, parent NodeID, ranges Domain) {
	n.depth = depth
	n.index = index
	n.parent = parent
	n.ranges = ranges
	n.uvalue = math.Inf(1)
	n.bvalue = math.Inf(1)
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{Depth: %d Index: %d Visits: %d Mean: %v U: %v B: %v}", n.depth, n.index, n.visits, n.mean, n.uvalue, n.bvalue)
}

func (n *Node) ID() NodeID      { return n.id }
func (n *Node) Depth() int      { return n.depth }
func (n *Node) Index() int      { return n.index }
func (n *Node) Visits() int     { return n.visits }
func (n *Node) Parent() NodeID  { return n.parent }
func (n *Node) UValue() float64 { return n.uvalue }
func (n *Node) BValue() float64 { return n.bvalue }

// MeanReward returns the average of the rewards recorded in the cell.
func (n *Node) MeanReward() float64 { return n.mean }

// Variance returns the population variance of the recorded rewards.
func (n *Node) Variance() float64 {
	if n.visits == 0 {
		return 0
	}

	return n.m2 / float64(n.visits)
}

// IsLeaf returns true if the cell hasn't been split.
func (n *Node) IsLeaf() bool { return n.children[0] == nilNode }

// Children returns the IDs of the two children, or nilNode twice for a leaf.
func (n *Node) Children() (NodeID, NodeID) { return n.children[0], n.children[1] }

// Ranges returns a copy of the cell geometry.
func (n *Node) Ranges() Domain {
	out := make(Domain, len(n.ranges))
	copy(out, n.ranges)

	return out
}

// Point returns the midpoint of the cell, the point sampled when the cell is
// selected.
func (n *Node) Point() []float64 {
	point := make([]float64, len(n.ranges))
	for i, r := range n.ranges {
		point[i] = midpoint(r)
	}

	return point
}

// record adds a reward to the running mean and variance.
func (n *Node) record(reward float64) {
	n.visits++

	delta := reward - n.mean
	n.mean += delta / float64(n.visits)
	n.m2 += delta * (reward - n.mean)
}

// updateBackward recomputes the B-value from the U-value and, for an
// internal node, the B-values of both children.
func (n *Node) updateBackward(kids ...*Node) {
	if len(kids) == 0 {
		n.bvalue = n.uvalue
		return
	}

	best := math.Inf(-1)
	for _, kid := range kids {
		best = math.Max(best, kid.bvalue)
	}

	n.bvalue = math.Min(n.uvalue, best)
}
