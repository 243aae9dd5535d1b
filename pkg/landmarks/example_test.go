package landmarks_test

import (
	"fmt"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
)

func ExampleGraph() {
	g := landmarks.New()
	l1 := g.AddLandmark(landmarks.Simple(landmarks.Fact{Var: 0, Value: 1}))
	l2 := g.AddLandmark(landmarks.Simple(landmarks.Fact{Var: 1, Value: 0}))
	or, _ := landmarks.NewDisjunctive(landmarks.Fact{Var: 2, Value: 0}, landmarks.Fact{Var: 2, Value: 1})
	l3 := g.AddLandmark(or)
	g.AddEdge(l1, l2, landmarks.EdgeNatural)
	g.AddEdge(l2, l3, landmarks.EdgeNatural)

	fmt.Println("Landmarks:", g.NumLandmarks())
	fmt.Println("Orderings:", g.NumEdges())

	g.RemoveNode(l2)
	fmt.Println("Orderings after removal:", g.NumEdges())
	fmt.Println("(1,0) is a landmark:", g.ContainsLandmark(landmarks.Fact{Var: 1, Value: 0}))
	// Output:
	// Landmarks: 3
	// Orderings: 2
	// Orderings after removal: 0
	// (1,0) is a landmark: false
}

func ExampleGraph_SetLandmarkIDs() {
	g := landmarks.New()
	for v := range 3 {
		g.AddLandmark(landmarks.Simple(landmarks.Fact{Var: v}))
	}
	g.SetLandmarkIDs()
	var ids []int
	for n := range g.Nodes() {
		ids = append(ids, n.ID())
	}
	fmt.Println(ids)
	fmt.Println("fresh:", g.IDsFresh())
	// Output:
	// [0 1 2]
	// fresh: true
}
