package pipeline

import (
	"time"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/sccs"
)

// GraphStats summarizes the structure of a landmark graph.
type GraphStats struct {
	Landmarks   int            `json:"landmarks"`
	Simple      int            `json:"simple"`
	Disjunctive int            `json:"disjunctive"`
	Conjunctive int            `json:"conjunctive"`
	Goal        int            `json:"goal"`
	Orderings   int            `json:"orderings"`
	ByType      map[string]int `json:"orderings_by_type"`
	SCCs        int            `json:"sccs"`
	CyclicSCCs  int            `json:"cyclic_sccs"`
	// LargestSCC is the size of the largest component, 0 for an empty graph.
	LargestSCC int `json:"largest_scc"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GraphStats

	RemovedLandmarks int           `json:"removed_landmarks"`
	RemovedOrderings int           `json:"removed_orderings"`
	LoadTime         time.Duration `json:"load_time"`
	ReduceTime       time.Duration `json:"reduce_time"`
	EmitTime         time.Duration `json:"emit_time"`
}

// Summarize computes the structural statistics of g.
func Summarize(g *landmarks.Graph) GraphStats {
	s := GraphStats{
		Landmarks:   g.NumLandmarks(),
		Simple:      g.NumSimple(),
		Disjunctive: g.NumDisjunctive(),
		Conjunctive: g.NumConjunctive(),
		Orderings:   g.NumEdges(),
		ByType:      make(map[string]int),
	}
	for n := range g.Nodes() {
		if n.Landmark().TrueInGoal() {
			s.Goal++
		}
		for _, t := range n.Children() {
			s.ByType[t.String()]++
		}
	}

	_, succ := g.Adjacency()
	comps := sccs.Compute(succ)
	s.SCCs = len(comps)
	for _, c := range comps {
		if sccs.IsCyclic(succ, c) {
			s.CyclicSCCs++
		}
		s.LargestSCC = max(s.LargestSCC, len(c))
	}
	return s
}
