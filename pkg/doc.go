// Package pkg provides the libraries behind lmgraph, a toolkit for landmark
// graphs of classical planning tasks.
//
// # Overview
//
// A landmark is a fact (or a disjunction or conjunction of facts) that
// every plan must make true at some point. Landmarks are connected by
// ordering constraints of four strengths: reasonable, natural,
// greedy-necessary and necessary. Discovery of landmarks happens
// elsewhere; lmgraph stores, reduces, analyzes and exports the result.
//
//	description (TOML/JSON)
//	         ↓
//	    [io] (import, validation against the variable table)
//	         ↓
//	    [landmarks] + [landmarks/transform] (graph, reductions)
//	         ↓
//	    [sccs] (strongly connected components)
//	         ↓
//	    landmark_graph.json / DOT / SVG / PNG / PDF
//
// # Quick Start
//
//	loaded, err := io.ImportFile("landmarks.toml")
//	if err != nil {
//	    return err
//	}
//	transform.MakeAcyclic(loaded.Graph)
//	loaded.Graph.SetLandmarkIDs()
//	path, err := io.ExportGraph(loaded.Graph, loaded.Variables, "out")
//
// # Main Packages
//
// [landmarks] - The landmark graph: landmarks over facts, nodes addressed
// by generation-checked handles, typed ordering edges kept symmetric in
// parent and child maps, fact indices and dense numbering.
//
// [landmarks/transform] - Ordering insertion with the stronger-wins rule,
// ordering and landmark reductions, cycle breaking.
//
// [sccs] - Tarjan's strongly connected components over adjacency lists.
//
// [io] - Description import (TOML and JSON) and the Cytoscape-style JSON
// export consumed by graph viewers.
//
// [render/nodelink] - Graphviz DOT generation and rendering to SVG, PNG and
// PDF.
//
// [pipeline] - Load → reduce → number → emit, shared by the CLI and the
// HTTP server, with cached rendering.
//
// [cache] - File, in-memory (LRU) and Redis caches for rendered diagrams.
//
// [errors] - Coded errors for input validation and export failures.
//
// [observability] - Hooks for metrics and tracing of pipeline, cache and
// HTTP events.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example       # Examples only
package pkg
