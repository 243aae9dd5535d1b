package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
)

func fact(v, d int) landmarks.Fact { return landmarks.Fact{Var: v, Value: d} }

func TestToDOT_Basic(t *testing.T) {
	g := landmarks.New()
	a := g.AddLandmark(landmarks.Simple(fact(0, 0)))
	b := g.AddLandmark(landmarks.Simple(fact(1, 0)))
	g.AddEdge(a, b, landmarks.EdgeNatural)
	g.SetLandmarkIDs()

	dot := ToDOT(g, nil, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"0" [label="(0, 0)"`) {
		t.Errorf("ToDOT() output missing node 0:\n%s", dot)
	}
	if !strings.Contains(dot, `"0" -> "1" [style=dashed]`) {
		t.Errorf("ToDOT() output missing natural edge:\n%s", dot)
	}
	if strings.Contains(dot, "cluster_scc") {
		t.Error("ToDOT() acyclic graph should not have clusters")
	}
}

func TestToDOT_Cycle(t *testing.T) {
	g := landmarks.New()
	a := g.AddLandmark(landmarks.Simple(fact(0, 0)))
	b := g.AddLandmark(landmarks.Simple(fact(1, 0)))
	c := g.AddLandmark(landmarks.Simple(fact(2, 0)))
	g.AddEdge(a, b, landmarks.EdgeReasonable)
	g.AddEdge(b, a, landmarks.EdgeNecessary)
	g.AddEdge(b, c, landmarks.EdgeGreedyNecessary)
	g.SetLandmarkIDs()

	dot := ToDOT(g, nil, Options{})

	if got := strings.Count(dot, "subgraph cluster_scc"); got != 1 {
		t.Errorf("ToDOT() clusters = %d, want 1:\n%s", got, dot)
	}
	if !strings.Contains(dot, "subgraph cluster_scc0 {") {
		t.Errorf("ToDOT() cycle should be the first component:\n%s", dot)
	}
	for _, want := range []string{"style=dotted", "style=bold, penwidth=2", "style=solid"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}

	flat := ToDOT(g, nil, Options{NoClusters: true})
	if strings.Contains(flat, "cluster_scc") {
		t.Error("ToDOT() NoClusters output has clusters")
	}
	if got := strings.Count(flat, "[label="); got != 3 {
		t.Errorf("ToDOT() NoClusters nodes = %d, want 3", got)
	}
}

func TestToDOT_Names(t *testing.T) {
	g := landmarks.New()
	d, _ := landmarks.NewDisjunctive(fact(0, 1), fact(0, 2))
	g.AddLandmark(d)
	g.SetLandmarkIDs()
	names := landmarks.FactNamerFunc(func(f landmarks.Fact) string {
		return map[int]string{1: "left", 2: "right"}[f.Value]
	})

	dot := ToDOT(g, names, Options{})

	if !strings.Contains(dot, `label="left | right"`) {
		t.Errorf("ToDOT() output missing disjunctive label:\n%s", dot)
	}
	if !strings.Contains(dot, "shape=ellipse") {
		t.Error("ToDOT() disjunctive landmark should be an ellipse")
	}
}

func TestFmtLabel_Detailed(t *testing.T) {
	g := landmarks.New()
	c, _ := landmarks.NewConjunctive(fact(0, 0), fact(1, 1))
	h := g.AddLandmark(c.WithTrueInGoal())
	n, _ := g.Node(h)

	label := fmtLabel(4, n, landmarks.FactNamerFunc(landmarks.Fact.String), true)

	if !strings.HasPrefix(label, "(0, 0) & (1, 1)\n") {
		t.Errorf("fmtLabel() detailed should start with the landmark: %q", label)
	}
	for _, want := range []string{"id: 4", "kind: conjunctive", "goal"} {
		if !strings.Contains(label, want) {
			t.Errorf("fmtLabel() detailed missing %q: %q", want, label)
		}
	}
}

func TestFmtAttrs(t *testing.T) {
	g := landmarks.New()
	plain := g.AddLandmark(landmarks.Simple(fact(0, 0)))
	goal := g.AddLandmark(landmarks.Simple(fact(1, 0)).WithTrueInGoal())

	n, _ := g.Node(plain)
	attrs := fmtAttrs(n, "x")
	if len(attrs) != 2 {
		t.Errorf("fmtAttrs() plain node should have 2 attrs, got %d: %v", len(attrs), attrs)
	}

	n, _ = g.Node(goal)
	attrs = fmtAttrs(n, "y")
	if !strings.Contains(strings.Join(attrs, " "), "peripheries=2") {
		t.Errorf("fmtAttrs() goal landmark missing double border: %v", attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites root",
			in:   `<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`,
		},
		{
			name: "no viewbox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 0"></svg>`,
			want: `<svg viewBox="0 0 0 0"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}
