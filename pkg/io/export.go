package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/sccs"
)

// GraphFileName is the name of the file written by [ExportGraph].
const GraphFileName = "landmark_graph.json"

// ErrStaleIDs is returned when a graph is exported after a mutation that was
// not followed by [landmarks.Graph.SetLandmarkIDs].
var ErrStaleIDs = errors.New("landmark ids are stale")

// Document is the export document.
type Document struct {
	Elements Elements `json:"elements"`
	Metadata Metadata `json:"metadata"`
}

type Elements struct {
	Nodes []NodeElement `json:"nodes"`
	Edges []EdgeElement `json:"edges"`
}

type NodeElement struct {
	Data NodeData `json:"data"`
}

type NodeData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	SCCID int    `json:"scc_id"`
}

type EdgeElement struct {
	Data EdgeData `json:"data"`
}

type EdgeData struct {
	ID     string             `json:"id"`
	Source string             `json:"source"`
	Target string             `json:"target"`
	Type   landmarks.EdgeType `json:"type"`
}

type Metadata struct {
	NumLandmarks   int `json:"num_landmarks"`
	NumSCCs        int `json:"num_sccs"`
	NumConjunctive int `json:"num_conjunctive_landmarks"`
	NumDisjunctive int `json:"num_disjunctive_landmarks"`
}

// BuildDocument assembles the export document of g. Nodes appear in id
// order; edges are sorted by source id, then target id. Labels come from
// names, which may be nil to fall back to raw fact pairs.
func BuildDocument(g *landmarks.Graph, names landmarks.FactNamer) (*Document, error) {
	if !g.IDsFresh() {
		return nil, ErrStaleIDs
	}
	if names == nil {
		names = NewVariables(nil)
	}
	handles, succ := g.Adjacency()
	comps := sccs.Compute(succ)
	sccOf := sccs.ComponentIndex(comps, len(handles))

	doc := &Document{
		Elements: Elements{
			Nodes: make([]NodeElement, 0, len(handles)),
			Edges: make([]EdgeElement, 0, g.NumEdges()),
		},
		Metadata: Metadata{
			NumLandmarks:   g.NumLandmarks(),
			NumSCCs:        len(comps),
			NumConjunctive: g.NumConjunctive(),
			NumDisjunctive: g.NumDisjunctive(),
		},
	}
	for i, h := range handles {
		n, _ := g.Node(h)
		src := strconv.Itoa(n.ID())
		doc.Elements.Nodes = append(doc.Elements.Nodes, NodeElement{Data: NodeData{
			ID:    src,
			Name:  n.Landmark().Label(names),
			SCCID: sccOf[i],
		}})
		for _, j := range succ[i] {
			t, _ := n.Child(handles[j])
			dst := strconv.Itoa(j)
			doc.Elements.Edges = append(doc.Elements.Edges, EdgeElement{Data: EdgeData{
				ID:     src + "_" + dst,
				Source: src,
				Target: dst,
				Type:   t,
			}})
		}
	}
	return doc, nil
}

// WriteJSON encodes the export document of g and writes it to w.
func WriteJSON(g *landmarks.Graph, names landmarks.FactNamer, w io.Writer) error {
	doc, err := BuildDocument(g, names)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportGraph writes the export document of g to dir/landmark_graph.json and
// returns the file path. dir must exist. Ids must be fresh.
func ExportGraph(g *landmarks.Graph, names landmarks.FactNamer, dir string) (string, error) {
	if !g.IDsFresh() {
		return "", ErrStaleIDs
	}
	path := filepath.Join(dir, GraphFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", lmerrors.Wrap(lmerrors.ErrCodeExportFailed, err, "create %s", path)
	}
	if err := WriteJSON(g, names, f); err != nil {
		f.Close()
		return "", lmerrors.Wrap(lmerrors.ErrCodeExportFailed, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return "", lmerrors.Wrap(lmerrors.ErrCodeExportFailed, err, "close %s", path)
	}
	return path, nil
}
