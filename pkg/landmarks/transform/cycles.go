package transform

import (
	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/sccs"
)

// MakeAcyclic removes orderings until the graph has no cycles and returns
// the number of removed orderings. For every cycle found, the weakest
// ordering on it is removed; among equally weak orderings the first one
// along the cycle goes.
func MakeAcyclic(g *landmarks.Graph) int {
	removed := 0
	for {
		handles, succ := g.Adjacency()
		cycle := findCycle(succ)
		if cycle == nil {
			return removed
		}

		weakest := 0
		var weakestType landmarks.EdgeType
		for i := range cycle {
			from, to := handles[cycle[i]], handles[cycle[(i+1)%len(cycle)]]
			t, _ := g.Edge(from, to)
			if i == 0 || t < weakestType {
				weakest, weakestType = i, t
			}
		}
		g.RemoveEdge(handles[cycle[weakest]], handles[cycle[(weakest+1)%len(cycle)]])
		removed++
	}
}

// findCycle returns the vertices of one cycle in succ, in edge order, or nil
// if the graph is acyclic. Only vertices of a cyclic strongly connected
// component are searched.
func findCycle(succ [][]int) []int {
	for _, comp := range sccs.Compute(succ) {
		if !sccs.IsCyclic(succ, comp) {
			continue
		}
		inComp := make(map[int]bool, len(comp))
		for _, v := range comp {
			inComp[v] = true
		}
		return cycleFrom(succ, inComp, comp[0])
	}
	return nil
}

// cycleFrom walks a DFS inside one strongly connected component until it
// reaches a vertex already on the current path. Such a vertex always exists
// because every vertex of the component has a successor inside it.
func cycleFrom(succ [][]int, inComp map[int]bool, start int) []int {
	const (
		white = iota
		gray
		black
	)
	color := make(map[int]int)
	var path, cycle []int

	var dfs func(v int) bool
	dfs = func(v int) bool {
		color[v] = gray
		path = append(path, v)
		for _, w := range succ[v] {
			if !inComp[w] {
				continue
			}
			switch color[w] {
			case gray:
				for i, p := range path {
					if p == w {
						cycle = append([]int(nil), path[i:]...)
						return true
					}
				}
			case white:
				if dfs(w) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		color[v] = black
		return false
	}
	dfs(start)
	return cycle
}
