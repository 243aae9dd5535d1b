package landmarks

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrAsymmetricEdge is returned by [Graph.Validate] when a child entry has
	// no matching parent entry of the same type, or vice versa.
	ErrAsymmetricEdge = errors.New("ordering is not mirrored between child and parent")

	// ErrDanglingEdge is returned by [Graph.Validate] when an adjacency entry
	// refers to a node that is no longer part of the graph.
	ErrDanglingEdge = errors.New("ordering refers to a removed node")

	// ErrIndexMismatch is returned by [Graph.Validate] when the fact indices
	// disagree with the stored landmarks.
	ErrIndexMismatch = errors.New("fact index out of sync with landmarks")

	// ErrCounterMismatch is returned by [Graph.Validate] when the disjunctive
	// or conjunctive counters disagree with the stored landmarks.
	ErrCounterMismatch = errors.New("landmark counter out of sync")
)

// slot is one entry of the node arena. gen is bumped every time the slot is
// released, which invalidates handles issued for the previous occupant.
type slot struct {
	gen  uint32
	node *Node
}

// Graph owns a set of landmark nodes and the orderings between them.
//
// Besides the node storage it maintains two fact indices, one for simple
// and one for disjunctive landmarks, so that "is this fact already a
// landmark?" is answered in constant time. Conjunctive landmarks are never
// indexed by fact. Storage order is insertion order; removals close gaps.
//
// Misuse that indicates a caller defect (inserting a landmark whose fact is
// already covered, looking up a fact that is not a landmark of the requested
// kind, passing a stale handle) panics instead of returning an error.
//
// The zero value is not usable - use [New]. A Graph is not safe for
// concurrent use.
type Graph struct {
	slots []slot
	free  []uint32
	order []Handle

	simple      map[Fact]Handle
	disjunctive map[Fact]Handle

	numConjunctive int
	numDisjunctive int

	idsFresh bool
}

// New returns an empty landmark graph.
func New() *Graph {
	return &Graph{
		simple:      make(map[Fact]Handle),
		disjunctive: make(map[Fact]Handle),
		idsFresh:    true,
	}
}

func contractf(format string, args ...any) {
	panic("landmarks: " + fmt.Sprintf(format, args...))
}

// Node returns the node behind h, or false if h is zero, foreign or stale.
func (g *Graph) Node(h Handle) (*Node, bool) {
	if h.IsZero() || int(h.index) >= len(g.slots) {
		return nil, false
	}
	s := g.slots[h.index]
	if s.gen != h.gen || s.node == nil {
		return nil, false
	}
	return s.node, true
}

func (g *Graph) mustNode(h Handle) *Node {
	n, ok := g.Node(h)
	if !ok {
		contractf("handle %s does not refer to a node of this graph", h)
	}
	return n
}

// Nodes iterates over all nodes in storage order.
// The graph must not be modified during iteration.
func (g *Graph) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, h := range g.order {
			if !yield(g.slots[h.index].node) {
				return
			}
		}
	}
}

// NumLandmarks returns the number of nodes in the graph.
func (g *Graph) NumLandmarks() int { return len(g.order) }

// NumSimple returns the number of simple landmarks.
func (g *Graph) NumSimple() int { return len(g.simple) }

// NumDisjunctive returns the number of disjunctive landmarks.
func (g *Graph) NumDisjunctive() int { return g.numDisjunctive }

// NumConjunctive returns the number of conjunctive landmarks.
func (g *Graph) NumConjunctive() int { return g.numConjunctive }

// NumEdges returns the number of orderings. Each ordering is counted once,
// at its source.
func (g *Graph) NumEdges() int {
	total := 0
	for n := range g.Nodes() {
		total += len(n.children)
	}
	return total
}

// ContainsSimple reports whether f is the fact of a simple landmark.
func (g *Graph) ContainsSimple(f Fact) bool {
	_, ok := g.simple[f]
	return ok
}

// ContainsDisjunctive reports whether f is one of the facts of a
// disjunctive landmark.
func (g *Graph) ContainsDisjunctive(f Fact) bool {
	_, ok := g.disjunctive[f]
	return ok
}

// ContainsLandmark reports whether f belongs to a simple or disjunctive
// landmark. Conjunctive landmarks are never matched: their facts are
// expected to be covered by other landmarks already.
func (g *Graph) ContainsLandmark(f Fact) bool {
	return g.ContainsSimple(f) || g.ContainsDisjunctive(f)
}

// ContainsOverlappingDisjunctive reports whether any of facts already
// belongs to a disjunctive landmark.
func (g *Graph) ContainsOverlappingDisjunctive(facts []Fact) bool {
	return slices.ContainsFunc(facts, g.ContainsDisjunctive)
}

// ContainsIdenticalDisjunctive reports whether a disjunctive landmark exists
// whose facts are exactly facts (ignoring order and duplicates). Subsets and
// supersets of a stored disjunction do not match; an empty set never does.
func (g *Graph) ContainsIdenticalDisjunctive(facts []Fact) bool {
	if len(facts) == 0 {
		return false
	}
	var owner Handle
	distinct := make(map[Fact]struct{}, len(facts))
	for _, f := range facts {
		h, ok := g.disjunctive[f]
		if !ok {
			return false
		}
		if owner.IsZero() {
			owner = h
		} else if owner != h {
			return false
		}
		distinct[f] = struct{}{}
	}
	return g.slots[owner.index].node.landmark.Len() == len(distinct)
}

// SimpleLandmark returns the simple landmark for f. It panics unless
// [Graph.ContainsSimple] reports true for f.
func (g *Graph) SimpleLandmark(f Fact) *Node {
	h, ok := g.simple[f]
	if !ok {
		contractf("fact %s is not a simple landmark", f)
	}
	return g.slots[h.index].node
}

// DisjunctiveLandmark returns the disjunctive landmark containing f. It
// panics unless [Graph.ContainsDisjunctive] reports true for f and f is not
// also a simple landmark.
func (g *Graph) DisjunctiveLandmark(f Fact) *Node {
	if g.ContainsSimple(f) {
		contractf("fact %s is a simple landmark", f)
	}
	h, ok := g.disjunctive[f]
	if !ok {
		contractf("fact %s is not part of a disjunctive landmark", f)
	}
	return g.slots[h.index].node
}

// AddLandmark takes ownership of lm, stores it in a new node and returns the
// node's handle. Simple landmarks are indexed by their fact, disjunctive
// landmarks by each of their facts, conjunctive landmarks are only counted.
//
// It panics if lm is invalid, or if lm is not conjunctive and one of its
// facts already satisfies [Graph.ContainsLandmark].
func (g *Graph) AddLandmark(lm Landmark) Handle {
	if !lm.IsValid() {
		contractf("invalid %s landmark with %d facts", lm.kind, len(lm.facts))
	}
	if lm.kind != KindConjunctive {
		for _, f := range lm.facts {
			if g.ContainsLandmark(f) {
				contractf("fact %s already belongs to a landmark", f)
			}
		}
	}

	h := g.alloc()
	n := newNode(h, lm)
	g.slots[h.index].node = n
	g.order = append(g.order, h)

	switch lm.kind {
	case KindDisjunctive:
		for _, f := range lm.facts {
			g.disjunctive[f] = h
		}
		g.numDisjunctive++
	case KindConjunctive:
		g.numConjunctive++
	default:
		g.simple[lm.facts[0]] = h
	}
	g.idsFresh = false
	return h
}

func (g *Graph) alloc() Handle {
	if k := len(g.free); k > 0 {
		idx := g.free[k-1]
		g.free = g.free[:k-1]
		return Handle{index: idx, gen: g.slots[idx].gen}
	}
	g.slots = append(g.slots, slot{gen: 1})
	return Handle{index: uint32(len(g.slots) - 1), gen: 1}
}

func (g *Graph) release(h Handle) {
	s := &g.slots[h.index]
	s.node = nil
	s.gen++
	g.free = append(g.free, h.index)
}

// AddEdge records the ordering from -> to with type t, replacing the type of
// an existing from -> to ordering. Both directions are updated together.
// It panics on stale handles and on self-orderings.
func (g *Graph) AddEdge(from, to Handle, t EdgeType) {
	src, dst := g.mustNode(from), g.mustNode(to)
	if from == to {
		contractf("ordering from %s to itself", from)
	}
	src.children[to] = t
	dst.parents[from] = t
}

// RemoveEdge deletes the ordering from -> to and reports whether it existed.
func (g *Graph) RemoveEdge(from, to Handle) bool {
	src, dst := g.mustNode(from), g.mustNode(to)
	if _, ok := src.children[to]; !ok {
		return false
	}
	delete(src.children, to)
	delete(dst.parents, from)
	return true
}

// Edge returns the type of the ordering from -> to, if any.
func (g *Graph) Edge(from, to Handle) (EdgeType, bool) {
	return g.mustNode(from).Child(to)
}

// detach removes every reference to n from the rest of the graph: the
// orderings touching it, its fact index entries and its counter. n itself
// stays allocated.
func (g *Graph) detach(n *Node) {
	for p := range n.parents {
		delete(g.slots[p.index].node.children, n.handle)
	}
	for c := range n.children {
		delete(g.slots[c.index].node.parents, n.handle)
	}
	clear(n.parents)
	clear(n.children)

	lm := n.landmark
	switch lm.kind {
	case KindDisjunctive:
		g.numDisjunctive--
		for _, f := range lm.facts {
			delete(g.disjunctive, f)
		}
	case KindConjunctive:
		g.numConjunctive--
	default:
		delete(g.simple, lm.facts[0])
	}
}

// RemoveNode detaches the node behind h from all other nodes and indices
// and deletes it. h and every other handle to the node become stale.
func (g *Graph) RemoveNode(h Handle) {
	n := g.mustNode(h)
	g.detach(n)
	i := slices.Index(g.order, h)
	g.order = slices.Delete(g.order, i, i+1)
	g.release(h)
	g.idsFresh = false
}

// RemoveNodeIf deletes every node for which remove returns true and returns
// the number of deleted nodes. remove is called exactly once per node, on
// the graph as it was before the call; it must not modify the graph.
// Storage is compacted in a single pass.
func (g *Graph) RemoveNodeIf(remove func(*Node) bool) int {
	doomed := make(map[Handle]*Node)
	for n := range g.Nodes() {
		if remove(n) {
			doomed[n.handle] = n
		}
	}
	if len(doomed) == 0 {
		return 0
	}
	for _, n := range doomed {
		g.detach(n)
	}
	g.order = slices.DeleteFunc(g.order, func(h Handle) bool {
		_, ok := doomed[h]
		return ok
	})
	for h := range doomed {
		g.release(h)
	}
	g.idsFresh = false
	return len(doomed)
}

// SetLandmarkIDs numbers the nodes 0..N-1 in storage order. Ids stay
// meaningful until the next insertion or removal of a node.
func (g *Graph) SetLandmarkIDs() {
	for i, h := range g.order {
		g.slots[h.index].node.id = i
	}
	g.idsFresh = true
}

// IDsFresh reports whether node ids still form the dense numbering
// assigned by the last [Graph.SetLandmarkIDs] call.
func (g *Graph) IDsFresh() bool { return g.idsFresh }

// NodeByID returns the node with the given id. It returns false if the id
// is out of range or ids are stale.
func (g *Graph) NodeByID(id int) (*Node, bool) {
	if !g.idsFresh || id < 0 || id >= len(g.order) {
		return nil, false
	}
	return g.slots[g.order[id].index].node, true
}

// Validate checks the cross-index invariants of the graph and returns nil if
// they hold: mirrored orderings, no references to removed nodes, fact indices
// matching the stored landmarks, and counters matching the node kinds.
func (g *Graph) Validate() error {
	var simple, disjunctive, conjunctive int
	for n := range g.Nodes() {
		for c, t := range n.children {
			child, ok := g.Node(c)
			if !ok {
				return fmt.Errorf("%w: %s -> %s", ErrDanglingEdge, n.handle, c)
			}
			if pt, ok := child.parents[n.handle]; !ok || pt != t {
				return fmt.Errorf("%w: %s -> %s", ErrAsymmetricEdge, n.handle, c)
			}
		}
		for p, t := range n.parents {
			parent, ok := g.Node(p)
			if !ok {
				return fmt.Errorf("%w: %s -> %s", ErrDanglingEdge, p, n.handle)
			}
			if ct, ok := parent.children[n.handle]; !ok || ct != t {
				return fmt.Errorf("%w: %s -> %s", ErrAsymmetricEdge, p, n.handle)
			}
		}

		lm := n.landmark
		switch lm.kind {
		case KindSimple:
			simple++
			if g.simple[lm.facts[0]] != n.handle {
				return fmt.Errorf("%w: simple fact %s", ErrIndexMismatch, lm.facts[0])
			}
		case KindDisjunctive:
			disjunctive++
			for _, f := range lm.facts {
				if g.disjunctive[f] != n.handle {
					return fmt.Errorf("%w: disjunctive fact %s", ErrIndexMismatch, f)
				}
			}
		case KindConjunctive:
			conjunctive++
		}
	}

	if simple != len(g.simple) {
		return fmt.Errorf("%w: %d simple landmarks, %d indexed facts", ErrIndexMismatch, simple, len(g.simple))
	}
	for f, h := range g.disjunctive {
		n, ok := g.Node(h)
		if !ok || n.landmark.kind != KindDisjunctive || !n.landmark.Contains(f) {
			return fmt.Errorf("%w: disjunctive fact %s", ErrIndexMismatch, f)
		}
	}
	if disjunctive != g.numDisjunctive || conjunctive != g.numConjunctive {
		return fmt.Errorf("%w: counted %d disjunctive/%d conjunctive, stored %d/%d",
			ErrCounterMismatch, disjunctive, conjunctive, g.numDisjunctive, g.numConjunctive)
	}
	return nil
}

// Adjacency returns the node handles in storage order together with the
// successor lists of the ordering graph over storage positions: succ[i]
// holds the positions of the children of handles[i], in ascending order.
// While ids are fresh, positions equal node ids.
func (g *Graph) Adjacency() (handles []Handle, succ [][]int) {
	handles = slices.Clone(g.order)
	pos := make(map[Handle]int, len(handles))
	for i, h := range handles {
		pos[h] = i
	}
	succ = make([][]int, len(handles))
	for i, h := range handles {
		n := g.slots[h.index].node
		out := make([]int, 0, len(n.children))
		for c := range n.children {
			out = append(out, pos[c])
		}
		slices.Sort(out)
		succ[i] = out
	}
	return handles, succ
}
