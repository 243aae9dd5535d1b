// Package sccs computes the maximal strongly connected components of a
// directed graph given as an adjacency list over dense vertex indices.
//
// # Overview
//
// A strongly connected component (SCC) is a maximal set of vertices in which
// every vertex is reachable from every other one. The partition into SCCs is
// used by the landmark exporter to annotate each landmark with the cycle it
// participates in, and by [transform.MakeAcyclic] to locate ordering cycles.
//
// [Compute] is a pure function: it never modifies its input and keeps no
// state between calls. It accepts empty graphs, self-loops, parallel edges
// and disconnected graphs. Every vertex appears in exactly one component;
// a component of size one without a self-loop is degenerate (acyclic).
//
// # Ordering
//
// Components are returned in topological order of the condensation: if some
// edge leads from component A to component B (A != B), A is listed before B.
// Vertices inside a component are sorted in ascending order.
//
//	adj := [][]int{{1}, {2}, {0, 3}, {}}
//	comps := sccs.Compute(adj)
//	// comps == [][]int{{0, 1, 2}, {3}}
//
// [transform.MakeAcyclic]: github.com/matzehuels/lmgraph/pkg/landmarks/transform.MakeAcyclic
package sccs
