// Package landmarks provides the landmark graph of a heuristic planner: the
// set of landmarks (facts, disjunctions or conjunctions of facts that every
// plan must achieve) and the typed orderings between them.
//
// # Overview
//
// Landmarks are discovered elsewhere and inserted with [Graph.AddLandmark],
// which returns a [Handle]. Orderings are added with [Graph.AddEdge]; the
// graph keeps the children map of the source and the parents map of the
// target in sync, so a node A has child (B, T) exactly when B has parent
// (A, T).
//
//	g := landmarks.New()
//	a := g.AddLandmark(landmarks.Simple(landmarks.Fact{Var: 0, Value: 1}))
//	b := g.AddLandmark(landmarks.Simple(landmarks.Fact{Var: 1, Value: 0}))
//	g.AddEdge(a, b, landmarks.EdgeNatural)
//
// # Landmark Kinds
//
//   - [KindSimple]: exactly one fact, indexed by that fact
//   - [KindDisjunctive]: two or more facts, each fact indexed to the node;
//     a fact belongs to at most one disjunctive landmark
//   - [KindConjunctive]: two or more facts, never indexed by fact
//
// [Graph.ContainsLandmark] consults the simple and disjunctive indices only.
// Conjunctive landmarks are not found through it; their facts are expected
// to be landmarks of their own.
//
// # Handles and Removal
//
// Nodes live in an arena owned by the graph. A [Handle] carries the slot
// index and a generation counter; removing a node bumps the generation, so
// handles to removed nodes are rejected even after the slot is reused.
// [Graph.RemoveNode] and [Graph.RemoveNodeIf] first detach the node from its
// neighbours and from the fact indices, then drop it from storage.
//
// # Ids
//
// Node ids are assigned by [Graph.SetLandmarkIDs] in storage order. Any
// later insertion or removal invalidates them: [Graph.IDsFresh] turns false
// and [Graph.NodeByID] stops resolving until the next renumbering.
//
// # Contract Violations
//
// Operations whose preconditions indicate a caller defect panic with a
// message prefixed by "landmarks:". Callers that need to check first use the
// Contains* queries. [Graph.Validate] re-checks all invariants and is meant
// for tests and diagnostics.
//
// # Concurrency
//
// A Graph is built and pruned by a single goroutine. Concurrent readers are
// safe only while no goroutine modifies the graph.
package landmarks
