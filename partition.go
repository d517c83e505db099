package xab

import (
	"math"

	"golang.org/x/exp/rand"
)

// Partition is a recursively refined partition of the search domain.
//
// Implementations hand out *Node values that stay valid for the lifetime of
// the partition. Layer returns the partition's own slice; callers must not
// modify it.
type Partition interface {
	// Root returns the cell covering the whole domain.
	Root() *Node

	// Node returns the cell at (depth, index), or nil if it doesn't exist.
	Node(depth, index int) *Node

	// Get returns the cell with the given ID.
	Get(id NodeID) *Node

	// Split turns the leaf n into an internal node with two children and
	// returns them. Splitting an internal node is a no-op returning its
	// existing children.
	Split(n *Node) (*Node, *Node)

	// Depth returns the number of layers, i.e. the deepest depth plus one.
	Depth() int

	// Layer returns the IDs of all cells at depth, in creation order.
	Layer(depth int) []NodeID

	// Size returns the number of cells.
	Size() int
}

// PartitionFunc builds a partition of domain. rng is the only source of
// randomness the partition may use.
type PartitionFunc func(domain Domain, rng *rand.Rand) (Partition, error)

type nodeKey struct {
	depth, index int
}

// BinaryPartition splits every cell in two halves along a dimension chosen
// uniformly at random.
type BinaryPartition struct {
	nodes  *arena
	layers [][]NodeID
	byKey  map[nodeKey]NodeID
	rng    *rand.Rand
}

// NewBinaryPartition is the PartitionFunc of BinaryPartition.
//
// Usage:
//
//	engine, err := NewHCT(config, domain, NewBinaryPartition)
func NewBinaryPartition(domain Domain, rng *rand.Rand) (Partition, error) {
	if err := validateDomain(domain); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, validationErrorf("binary partition needs a random source")
	}

	p := &BinaryPartition{
		nodes: newArena(defaultBucketSize),
		byKey: make(map[nodeKey]NodeID),
		rng:   rng,
	}

	ranges := make(Domain, len(domain))
	copy(ranges, domain)
	p.add(0, 1, nilNode, ranges)

	return p, nil
}

func (p *BinaryPartition) Root() *Node { return p.nodes.get(p.layers[0][0]) }

func (p *BinaryPartition) Node(depth, index int) *Node {
	id, ok := p.byKey[nodeKey{depth, index}]
	if !ok {
		return nil
	}

	return p.nodes.get(id)
}

func (p *BinaryPartition) Get(id NodeID) *Node { return p.nodes.get(id) }

func (p *BinaryPartition) Depth() int { return len(p.layers) }

func (p *BinaryPartition) Layer(depth int) []NodeID {
	if depth < 0 || depth >= len(p.layers) {
		return nil
	}

	return p.layers[depth]
}

func (p *BinaryPartition) Size() int { return p.nodes.len() }

// Split halves n along a random dimension. The lower half gets index 2i,
// the upper half 2i-1.
func (p *BinaryPartition) Split(n *Node) (*Node, *Node) {
	if !n.IsLeaf() {
		return p.nodes.get(n.children[0]), p.nodes.get(n.children[1])
	}

	dim := p.rng.Intn(len(n.ranges))
	mid := midpoint(n.ranges[dim])

	lower := n.Ranges()
	upper := n.Ranges()
	lower[dim].Max = mid
	upper[dim].Min = mid

	parent, depth, index := n.id, n.depth+1, n.index

	left := p.add(depth, 2*index, parent, lower)
	right := p.add(depth, 2*index-1, parent, upper)
	n.children = [2]NodeID{left.id, right.id}

	return left, right
}

func (p *BinaryPartition) add(depth, index int, parent NodeID, ranges Domain) *Node {
	id, n := p.nodes.alloc()
	n.init(depth, index, parent, ranges)

	if len(p.layers) <= depth {
		p.layers = append(p.layers, nil)
	}
	p.layers[depth] = append(p.layers[depth], id)
	p.byKey[nodeKey{depth, index}] = id

	return n
}

// validateDomain rejects empty domains and ranges that are inverted or not
// finite.
func validateDomain(domain Domain) error {
	if len(domain) == 0 {
		return validationErrorf("domain must have at least one dimension")
	}

	for i, r := range domain {
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
			return validationErrorf("dimension %d: bounds must be finite, got [%v, %v]", i, r.Min, r.Max)
		}
		if r.Min > r.Max {
			return validationErrorf("dimension %d: min %v is greater than max %v", i, r.Min, r.Max)
		}
	}

	return nil
}
