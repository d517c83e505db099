package xab

// NodeID addresses a node inside a partition. The zero value means "no node".
type NodeID int32

const (
	nilNode NodeID = 0

	defaultBucketSize = 1024
)

// arena is append-only storage for nodes. Nodes live in fixed size buckets
// so a *Node handed out by get stays valid while the arena grows.
type arena struct {
	bucketSize int
	storage    [][]Node
	count      int
}

func newArena(bucketSize int) *arena {
	if bucketSize <= 0 {
		bucketSize = defaultBucketSize
	}

	return &arena{
		bucketSize: bucketSize,
		storage:    make([][]Node, 0, 1),
	}
}

// alloc reserves a zeroed node and returns its ID. IDs start at 1.
func (a *arena) alloc() (NodeID, *Node) {
	if a.count == len(a.storage)*a.bucketSize {
		a.storage = append(a.storage, make([]Node, a.bucketSize))
	}

	a.count++
	id := NodeID(a.count)
	n := a.get(id)
	n.id = id

	return id, n
}

// get returns the node stored under id. It panics on nilNode or an ID the
// arena never handed out.
func (a *arena) get(id NodeID) *Node {
	if id == nilNode || int(id) > a.count {
		panic("xab: node id out of arena bounds")
	}

	i := int(id) - 1

	return &a.storage[i/a.bucketSize][i%a.bucketSize]
}

func (a *arena) len() int { return a.count }
