package landmarks

import (
	"fmt"
	"iter"
	"maps"
)

// Handle identifies a node inside the [Graph] that created it. Handles stay
// valid until the node is removed; after that the graph rejects them even if
// the underlying slot has been reused. The zero Handle never refers to a node.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string { return fmt.Sprintf("#%d.%d", h.index, h.gen) }

// Node is a landmark owned by a [Graph] together with its orderings.
// Adjacency is stored as handles of the neighbouring nodes; the graph keeps
// children and parents mirrored. Nodes are only mutated through the graph.
type Node struct {
	handle   Handle
	landmark Landmark
	id       int
	children map[Handle]EdgeType
	parents  map[Handle]EdgeType
}

func newNode(h Handle, lm Landmark) *Node {
	return &Node{
		handle:   h,
		landmark: lm,
		id:       -1,
		children: make(map[Handle]EdgeType),
		parents:  make(map[Handle]EdgeType),
	}
}

// Handle returns the node's handle in its graph.
func (n *Node) Handle() Handle { return n.handle }

// Landmark returns the landmark stored in the node.
func (n *Node) Landmark() Landmark { return n.landmark }

// Kind is shorthand for n.Landmark().Kind().
func (n *Node) Kind() Kind { return n.landmark.kind }

// ID returns the id assigned by the last [Graph.SetLandmarkIDs] call, or -1
// if none has happened. The value is only meaningful while
// [Graph.IDsFresh] reports true.
func (n *Node) ID() int { return n.id }

// Child returns the type of the ordering n -> h, if any.
func (n *Node) Child(h Handle) (EdgeType, bool) {
	t, ok := n.children[h]
	return t, ok
}

// Parent returns the type of the ordering h -> n, if any.
func (n *Node) Parent(h Handle) (EdgeType, bool) {
	t, ok := n.parents[h]
	return t, ok
}

// Children iterates over the targets of orderings leaving n.
// The graph must not be modified during iteration.
func (n *Node) Children() iter.Seq2[Handle, EdgeType] { return maps.All(n.children) }

// Parents iterates over the sources of orderings entering n.
// The graph must not be modified during iteration.
func (n *Node) Parents() iter.Seq2[Handle, EdgeType] { return maps.All(n.parents) }

// NumChildren returns the number of orderings leaving n.
func (n *Node) NumChildren() int { return len(n.children) }

// NumParents returns the number of orderings entering n.
func (n *Node) NumParents() int { return len(n.parents) }
