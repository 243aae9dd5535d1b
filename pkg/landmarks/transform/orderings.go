package transform

import "github.com/matzehuels/lmgraph/pkg/landmarks"

// AddOrdering inserts the ordering from -> to of type t unless a stronger or
// equal ordering is already present, and reports whether the graph changed.
//
// A reasonable ordering conflicts with an ordering in the opposite
// direction: if that one is stronger, the new ordering is dropped, otherwise
// the opposite ordering is removed first. An existing from -> to ordering is
// only replaced when it is weaker than t.
func AddOrdering(g *landmarks.Graph, from, to landmarks.Handle, t landmarks.EdgeType) bool {
	changed := false
	if t == landmarks.EdgeReasonable {
		if back, ok := g.Edge(to, from); ok {
			if back > t {
				return false
			}
			g.RemoveEdge(to, from)
			changed = true
		}
	}
	if cur, ok := g.Edge(from, to); ok && cur >= t {
		return changed
	}
	g.AddEdge(from, to, t)
	return true
}

// DiscardOrderings removes every ordering whose type is not accepted by keep
// and returns the number of removed orderings.
func DiscardOrderings(g *landmarks.Graph, keep func(landmarks.EdgeType) bool) int {
	type edge struct{ from, to landmarks.Handle }
	var drop []edge
	for n := range g.Nodes() {
		for c, t := range n.Children() {
			if !keep(t) {
				drop = append(drop, edge{n.Handle(), c})
			}
		}
	}
	for _, e := range drop {
		g.RemoveEdge(e.from, e.to)
	}
	return len(drop)
}

// AtLeast returns a keep function for [DiscardOrderings] that accepts
// orderings of strength min or stronger.
func AtLeast(min landmarks.EdgeType) func(landmarks.EdgeType) bool {
	return func(t landmarks.EdgeType) bool { return t >= min }
}
