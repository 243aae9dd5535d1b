// Package transform provides passes that modify a landmark graph after
// discovery: strength-aware ordering insertion, cycle elimination and
// reduction passes that drop whole classes of landmarks or orderings.
//
// All passes work in place and report how much they changed. They keep the
// graph's invariants; node ids must be reassigned with
// [landmarks.Graph.SetLandmarkIDs] after any pass that removes nodes.
package transform
