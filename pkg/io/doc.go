// Package io reads landmark descriptions and writes landmark graph exports.
//
// # Overview
//
// Landmark discovery runs outside lmgraph. Its result is handed over as a
// description file listing variables, landmarks and orderings; [ImportFile]
// and [Read] turn it into a [landmarks.Graph] plus the [Variables] table used
// to name facts. The finished graph is written with [ExportGraph] as a
// diagnostic snapshot for graph viewers. Exports are one-way: lmgraph never
// reads them back.
//
// # Description Format
//
// TOML (default) or JSON with the same structure:
//
//	[[variables]]
//	name = "truck"
//	values = ["Atom at(truck, depot)", "Atom at(truck, market)"]
//
//	[[landmarks]]
//	name = "l1"
//	kind = "simple"
//	facts = [[0, 1]]
//	goal = true
//
//	[[orderings]]
//	from = "l1"
//	to = "l2"
//	type = "natural"
//
// Facts are (variable, value) pairs indexing into the variables table. A
// variable without value names declares its domain with size. Kinds are
// simple, disjunctive and conjunctive; kind may be omitted for single-fact
// landmarks. Ordering types are reasonable, natural, greedy-necessary and
// necessary.
//
// Import applies the checks a discovery procedure performs before inserting
// into the graph: a repeated simple landmark or an identical disjunction is
// merged into the existing node (both names then refer to it), while a
// disjunction overlapping another one, or mixing simple and disjunctive
// facts, is rejected. Orderings are inserted with
// [transform.AddOrdering], so the strongest ordering between two landmarks
// wins.
//
// # Export Format
//
// [ExportGraph] writes landmark_graph.json in the element layout used by
// Cytoscape-style viewers:
//
//	{
//	  "elements": {
//	    "nodes": [{"data": {"id": "0", "name": "...", "scc_id": 0}}],
//	    "edges": [{"data": {"id": "0_1", "source": "0", "target": "1", "type": 1}}]
//	  },
//	  "metadata": {
//	    "num_landmarks": 2, "num_sccs": 2,
//	    "num_conjunctive_landmarks": 0, "num_disjunctive_landmarks": 0
//	  }
//	}
//
// Node ids come from [landmarks.Graph.SetLandmarkIDs]; exporting a graph whose
// ids are stale fails with [ErrStaleIDs]. scc_id is the index of the node's
// strongly connected component in topological order, computed with
// [sccs.Compute].
//
// [transform.AddOrdering]: github.com/matzehuels/lmgraph/pkg/landmarks/transform.AddOrdering
// [sccs.Compute]: github.com/matzehuels/lmgraph/pkg/sccs.Compute
package io
