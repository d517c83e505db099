package xab

/*
Selection, backward propagation and expansion. hct.go drives these in the
round protocol; partition.go and node.go hold the data.
*/

// optTraverse walks from the root towards the most promising cell.
//
// It stops at a leaf, at a cell visited fewer than tau[depth] times, or at a
// cell with a child that has never been visited. Otherwise it descends into
// the child with the larger B-value, the lower index winning exact ties.
// It returns the cell it stopped at and the ancestors above it, root first.
func optTraverse(p Partition, tau []float64) (*Node, []*Node) {
	var path []*Node

	node := p.Root()
	for !node.IsLeaf() {
		if float64(node.visits) < tau[node.depth] {
			break
		}

		left, right := p.Get(node.children[0]), p.Get(node.children[1])
		if left.visits == 0 || right.visits == 0 {
			break
		}

		path = append(path, node)
		node = preferred(left, right)
	}

	return node, path
}

func preferred(a, b *Node) *Node {
	switch {
	case a.bvalue > b.bvalue:
		return a
	case b.bvalue > a.bvalue:
		return b
	case a.index < b.index:
		return a
	}

	return b
}

// fullBackwardSweep recomputes every B-value, deepest layer first.
func fullBackwardSweep(p Partition) {
	for h := p.Depth() - 1; h >= 0; h-- {
		for _, id := range p.Layer(h) {
			n := p.Get(id)
			if n.IsLeaf() {
				n.updateBackward()
				continue
			}

			n.updateBackward(p.Get(n.children[0]), p.Get(n.children[1]))
		}
	}
}

// fullUValueSweep recomputes the U-value of every visited cell.
func fullUValueSweep(p Partition, s Schedule, deltaTilde float64, bonus BonusFunc) {
	for h := 0; h < p.Depth(); h++ {
		for _, id := range p.Layer(h) {
			n := p.Get(id)
			if n.visits == 0 {
				continue
			}

			n.uvalue = s.UValue(n, deltaTilde, bonus)
		}
	}
}

// shouldExpand reports whether n is a leaf that has collected enough visits
// to be split.
func shouldExpand(n *Node, tau []float64) bool {
	return n.IsLeaf() && float64(n.visits) >= tau[n.depth]
}

// unvisitedChild returns the lowest index child of n that has never been
// sampled, or nil. Selection never descends into such a child, the engine
// samples it through this accounting until it has a reward.
func unvisitedChild(p Partition, n *Node) *Node {
	if n.IsLeaf() {
		return nil
	}

	var pick *Node
	for _, id := range n.children {
		child := p.Get(id)
		if child.visits > 0 {
			continue
		}
		if pick == nil || child.index < pick.index {
			pick = child
		}
	}

	return pick
}
