// Package nodelink renders landmark graphs as node-link diagrams using
// Graphviz.
//
// # Overview
//
// Landmarks appear as nodes labelled like the JSON export, ordering edges
// as arrows. Strongly connected components with more than one landmark, or
// with a self-loop, are drawn inside a cluster so cyclic orderings stand out.
//
//	Graph → ToDOT() → DOT → RenderSVG() → SVG → render.ToPDF / render.ToPNG
//
// # Styling
//
// Node shape follows the landmark kind:
//
//   - simple: rounded box
//   - disjunctive: ellipse
//   - conjunctive: octagon
//
// Landmarks that hold in the goal get a double border. Edge style follows
// the ordering type: necessary orderings are bold, greedy-necessary solid,
// natural dashed and reasonable dotted.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, vars, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
