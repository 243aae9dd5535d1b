package transform

import "github.com/matzehuels/lmgraph/pkg/landmarks"

// DiscardDisjunctive removes all disjunctive landmarks and returns how many
// were removed.
func DiscardDisjunctive(g *landmarks.Graph) int {
	return discardKind(g, landmarks.KindDisjunctive)
}

// DiscardConjunctive removes all conjunctive landmarks and returns how many
// were removed.
func DiscardConjunctive(g *landmarks.Graph) int {
	return discardKind(g, landmarks.KindConjunctive)
}

func discardKind(g *landmarks.Graph, k landmarks.Kind) int {
	return g.RemoveNodeIf(func(n *landmarks.Node) bool { return n.Kind() == k })
}
