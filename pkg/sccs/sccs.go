package sccs

import "slices"

// tarjan holds the per-call DFS state of Tarjan's algorithm.
type tarjan struct {
	adj     [][]int
	index   []int // discovery index, -1 when unvisited
	lowlink []int
	onStack []bool
	stack   []int
	next    int
	result  [][]int
}

// Compute returns the maximal strongly connected components of the graph
// whose successors of vertex v are adj[v]. Successor indices must lie in
// [0, len(adj)). See the package documentation for the ordering guarantees.
func Compute(adj [][]int) [][]int {
	n := len(adj)
	t := &tarjan{
		adj:     adj,
		index:   make([]int, n),
		lowlink: make([]int, n),
		onStack: make([]bool, n),
	}
	for v := range t.index {
		t.index[v] = -1
	}
	for v := range n {
		if t.index[v] == -1 {
			t.strongConnect(v)
		}
	}
	// Tarjan emits components in reverse topological order.
	slices.Reverse(t.result)
	return t.result
}

func (t *tarjan) strongConnect(v int) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.adj[v] {
		if t.index[w] == -1 {
			t.strongConnect(w)
			t.lowlink[v] = min(t.lowlink[v], t.lowlink[w])
		} else if t.onStack[w] {
			t.lowlink[v] = min(t.lowlink[v], t.index[w])
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var comp []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	slices.Sort(comp)
	t.result = append(t.result, comp)
}

// ComponentIndex maps every vertex to the index of its component in comps.
// n is the number of vertices; vertices missing from comps map to -1.
func ComponentIndex(comps [][]int, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = -1
	}
	for c, comp := range comps {
		for _, v := range comp {
			idx[v] = c
		}
	}
	return idx
}

// IsCyclic reports whether comp describes a cycle in adj: it has more than
// one vertex, or its single vertex has a self-loop.
func IsCyclic(adj [][]int, comp []int) bool {
	if len(comp) > 1 {
		return true
	}
	if len(comp) == 0 {
		return false
	}
	v := comp[0]
	return slices.Contains(adj[v], v)
}
