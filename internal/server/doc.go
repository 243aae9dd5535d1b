// Package server exposes the export pipeline over HTTP.
//
// # Endpoints
//
//	POST /graphs            upload a landmark description, returns {"id", "stats"}
//	GET  /graphs/{id}       the landmark_graph.json export of an upload
//	GET  /graphs/{id}/dot   the Graphviz source of an upload
//	GET  /graphs/{id}/svg   the rendered diagram (cached)
//	GET  /healthz           liveness probe
//
// Uploads are TOML by default; pass ?format=json for JSON descriptions.
// The reduction options of the pipeline are available as query parameters:
// discard_disjunctive, discard_conjunctive, acyclic and min_ordering.
//
// Every upload is exported into its own directory below the server root,
// named by a random UUID. Identifiers are validated before they are used as
// path components.
//
// Invalid descriptions are answered with 422 Unprocessable Entity and a JSON
// body carrying the error code:
//
//	{"error": "INVALID_LANDMARK", "message": "landmark \"l2\": fact (3, 1) is not part of the task"}
package server
