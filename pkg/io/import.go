package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/landmarks/transform"
)

// Format selects the encoding of a description file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the description format from a file extension.
// Unknown extensions default to TOML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// ParseFormat parses a format name; the empty string selects TOML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", lmerrors.New(lmerrors.ErrCodeInvalidFormat, "unknown description format %q", s)
}

// Description is the decoded content of a description file.
type Description struct {
	Variables []VariableSpec `toml:"variables" json:"variables"`
	Landmarks []LandmarkSpec `toml:"landmarks" json:"landmarks"`
	Orderings []OrderingSpec `toml:"orderings" json:"orderings"`
}

// VariableSpec declares one state variable.
type VariableSpec struct {
	Name   string   `toml:"name" json:"name"`
	Values []string `toml:"values" json:"values,omitempty"`
	Size   int      `toml:"size" json:"size,omitempty"`
}

// LandmarkSpec declares one landmark.
type LandmarkSpec struct {
	Name  string  `toml:"name" json:"name"`
	Kind  string  `toml:"kind" json:"kind,omitempty"`
	Facts [][]int `toml:"facts" json:"facts"`
	Goal  bool    `toml:"goal" json:"goal,omitempty"`
}

// OrderingSpec declares an ordering between two named landmarks.
type OrderingSpec struct {
	From string `toml:"from" json:"from"`
	To   string `toml:"to" json:"to"`
	Type string `toml:"type" json:"type"`
}

// Loaded is a landmark graph built from a description.
type Loaded struct {
	Graph     *landmarks.Graph
	Variables *Variables
	// Names maps every landmark name to its node. Merged landmarks share a
	// node.
	Names map[string]landmarks.Handle
}

// Decode parses a description without building the graph.
func Decode(r io.Reader, format Format) (*Description, error) {
	var desc Description
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&desc); err != nil {
			return nil, lmerrors.Wrap(lmerrors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML, "":
		md, err := toml.NewDecoder(r).Decode(&desc)
		if err != nil {
			return nil, lmerrors.Wrap(lmerrors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, lmerrors.New(lmerrors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
	default:
		return nil, lmerrors.New(lmerrors.ErrCodeInvalidFormat, "unknown description format %q", format)
	}
	return &desc, nil
}

// Read decodes a description from r and builds its landmark graph.
// Read does not close r.
func Read(r io.Reader, format Format) (*Loaded, error) {
	desc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return Build(desc)
}

// ImportFile reads the description at path. The format follows the file
// extension (see [FormatFromPath]).
func ImportFile(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, lmerrors.Wrap(lmerrors.ErrCodeFileNotFound, err, "description %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Read(bytes.NewReader(data), FormatFromPath(path))
}

// Build validates desc and inserts its landmarks and orderings into a new
// graph. Ids are assigned before returning.
func Build(desc *Description) (*Loaded, error) {
	for i, v := range desc.Variables {
		if v.Name != "" {
			if err := lmerrors.ValidateName(v.Name); err != nil {
				return nil, lmerrors.Wrap(lmerrors.ErrCodeInvalidInput, err, "variable %d", i)
			}
		}
		if max(v.Size, len(v.Values)) == 0 {
			return nil, lmerrors.New(lmerrors.ErrCodeInvalidInput, "variable %d has an empty domain", i)
		}
	}

	out := &Loaded{
		Graph:     landmarks.New(),
		Variables: NewVariables(desc.Variables),
		Names:     make(map[string]landmarks.Handle, len(desc.Landmarks)),
	}
	for _, spec := range desc.Landmarks {
		if err := out.addLandmark(spec); err != nil {
			return nil, err
		}
	}
	for _, spec := range desc.Orderings {
		if err := out.addOrdering(spec); err != nil {
			return nil, err
		}
	}
	out.Graph.SetLandmarkIDs()
	return out, nil
}

func (l *Loaded) addLandmark(spec LandmarkSpec) error {
	if err := lmerrors.ValidateName(spec.Name); err != nil {
		return err
	}
	if _, dup := l.Names[spec.Name]; dup {
		return lmerrors.New(lmerrors.ErrCodeInvalidInput, "duplicate landmark name %q", spec.Name)
	}

	facts := make([]landmarks.Fact, len(spec.Facts))
	for i, pair := range spec.Facts {
		if len(pair) != 2 {
			return lmerrors.New(lmerrors.ErrCodeInvalidLandmark,
				"landmark %q: fact %d must be a [variable, value] pair", spec.Name, i)
		}
		f := landmarks.Fact{Var: pair[0], Value: pair[1]}
		if !l.Variables.Valid(f) {
			return lmerrors.New(lmerrors.ErrCodeInvalidLandmark,
				"landmark %q: fact %s is not part of the task", spec.Name, f)
		}
		facts[i] = f
	}

	kind := landmarks.KindSimple
	if spec.Kind != "" {
		k, err := landmarks.ParseKind(spec.Kind)
		if err != nil {
			return lmerrors.Wrap(lmerrors.ErrCodeInvalidLandmark, err, "landmark %q", spec.Name)
		}
		kind = k
	}

	h, err := l.insert(spec.Name, kind, facts, spec.Goal)
	if err != nil {
		return err
	}
	l.Names[spec.Name] = h
	return nil
}

// insert adds the landmark unless an equivalent one exists. It performs the
// membership checks that AddLandmark relies on its callers to make.
func (l *Loaded) insert(name string, kind landmarks.Kind, facts []landmarks.Fact, goal bool) (landmarks.Handle, error) {
	g := l.Graph
	var lm landmarks.Landmark

	switch kind {
	case landmarks.KindSimple:
		if len(facts) != 1 {
			return landmarks.Handle{}, lmerrors.New(lmerrors.ErrCodeInvalidLandmark,
				"landmark %q: simple landmarks have exactly one fact, got %d", name, len(facts))
		}
		f := facts[0]
		if g.ContainsSimple(f) {
			return g.SimpleLandmark(f).Handle(), nil
		}
		if g.ContainsDisjunctive(f) {
			return landmarks.Handle{}, lmerrors.New(lmerrors.ErrCodeInvalidLandmark,
				"landmark %q: fact %s already belongs to a disjunctive landmark", name, f)
		}
		lm = landmarks.Simple(f)

	case landmarks.KindDisjunctive:
		if g.ContainsIdenticalDisjunctive(facts) {
			return g.DisjunctiveLandmark(facts[0]).Handle(), nil
		}
		if g.ContainsOverlappingDisjunctive(facts) {
			return landmarks.Handle{}, lmerrors.New(lmerrors.ErrCodeInvalidLandmark,
				"landmark %q overlaps an existing disjunctive landmark", name)
		}
		for _, f := range facts {
			if g.ContainsSimple(f) {
				return landmarks.Handle{}, lmerrors.New(lmerrors.ErrCodeInvalidLandmark,
					"landmark %q: fact %s is already a simple landmark", name, f)
			}
		}
		d, err := landmarks.NewDisjunctive(facts...)
		if err != nil {
			return landmarks.Handle{}, lmerrors.Wrap(lmerrors.ErrCodeInvalidLandmark, err, "landmark %q", name)
		}
		lm = d

	case landmarks.KindConjunctive:
		c, err := landmarks.NewConjunctive(facts...)
		if err != nil {
			return landmarks.Handle{}, lmerrors.Wrap(lmerrors.ErrCodeInvalidLandmark, err, "landmark %q", name)
		}
		lm = c
	}

	if goal {
		lm = lm.WithTrueInGoal()
	}
	return g.AddLandmark(lm), nil
}

func (l *Loaded) addOrdering(spec OrderingSpec) error {
	from, ok := l.Names[spec.From]
	if !ok {
		return lmerrors.New(lmerrors.ErrCodeInvalidOrdering, "ordering %s -> %s: unknown landmark %q", spec.From, spec.To, spec.From)
	}
	to, ok := l.Names[spec.To]
	if !ok {
		return lmerrors.New(lmerrors.ErrCodeInvalidOrdering, "ordering %s -> %s: unknown landmark %q", spec.From, spec.To, spec.To)
	}
	if from == to {
		return lmerrors.New(lmerrors.ErrCodeInvalidOrdering, "ordering %s -> %s orders a landmark before itself", spec.From, spec.To)
	}
	t, err := landmarks.ParseEdgeType(spec.Type)
	if err != nil {
		return lmerrors.Wrap(lmerrors.ErrCodeInvalidOrdering, err, "ordering %s -> %s", spec.From, spec.To)
	}
	transform.AddOrdering(l.Graph, from, to, t)
	return nil
}
