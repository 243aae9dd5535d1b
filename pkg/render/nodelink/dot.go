package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/render"
	"github.com/matzehuels/lmgraph/pkg/sccs"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node id, the landmark kind and the goal marker to
	// node labels.
	Detailed bool
	// NoClusters disables grouping of cyclic components.
	NoClusters bool
}

var shapes = map[landmarks.Kind]string{
	landmarks.KindSimple:      `shape=box, style="rounded,filled"`,
	landmarks.KindDisjunctive: `shape=ellipse, style=filled`,
	landmarks.KindConjunctive: `shape=octagon, style=filled`,
}

var edgeStyles = map[landmarks.EdgeType]string{
	landmarks.EdgeReasonable:      "style=dotted",
	landmarks.EdgeNatural:         "style=dashed",
	landmarks.EdgeGreedyNecessary: "style=solid",
	landmarks.EdgeNecessary:       "style=bold, penwidth=2",
}

// ToDOT converts a landmark graph to Graphviz DOT format. DOT node names are
// storage positions, which equal the landmark ids while ids are fresh.
// names may be nil, in which case facts are shown as raw pairs.
func ToDOT(g *landmarks.Graph, names landmarks.FactNamer, opts Options) string {
	if names == nil {
		names = landmarks.FactNamerFunc(landmarks.Fact.String)
	}
	handles, succ := g.Adjacency()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	clustered := make([]bool, len(handles))
	if !opts.NoClusters {
		for k, comp := range sccs.Compute(succ) {
			if !sccs.IsCyclic(succ, comp) {
				continue
			}
			fmt.Fprintf(&buf, "  subgraph cluster_scc%d {\n", k)
			fmt.Fprintf(&buf, "    label=\"scc %d\";\n", k)
			buf.WriteString("    style=dashed;\n")
			buf.WriteString("    color=red;\n")
			for _, i := range comp {
				n, _ := g.Node(handles[i])
				fmt.Fprintf(&buf, "    %s\n", fmtNode(i, n, names, opts.Detailed))
				clustered[i] = true
			}
			buf.WriteString("  }\n")
		}
	}
	for i, h := range handles {
		if clustered[i] {
			continue
		}
		n, _ := g.Node(h)
		fmt.Fprintf(&buf, "  %s\n", fmtNode(i, n, names, opts.Detailed))
	}

	buf.WriteString("\n")
	for i, h := range handles {
		n, _ := g.Node(h)
		for _, j := range succ[i] {
			t, _ := n.Child(handles[j])
			fmt.Fprintf(&buf, "  \"%d\" -> \"%d\" [%s];\n", i, j, edgeStyles[t])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNode(pos int, n *landmarks.Node, names landmarks.FactNamer, detailed bool) string {
	attrs := fmtAttrs(n, fmtLabel(pos, n, names, detailed))
	return fmt.Sprintf("\"%d\" [%s];", pos, strings.Join(attrs, ", "))
}

func fmtLabel(pos int, n *landmarks.Node, names landmarks.FactNamer, detailed bool) string {
	label := n.Landmark().Label(names)
	if !detailed {
		return label
	}
	parts := []string{label, fmt.Sprintf("id: %d", pos), "kind: " + n.Kind().String()}
	if n.Landmark().TrueInGoal() {
		parts = append(parts, "goal")
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *landmarks.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label), shapes[n.Kind()]}
	if n.Landmark().TrueInGoal() {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
