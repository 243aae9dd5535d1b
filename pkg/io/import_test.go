package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
	"github.com/matzehuels/lmgraph/pkg/landmarks"
)

const logisticsTOML = `
[[variables]]
name = "truck"
values = ["at depot", "at market"]

[[variables]]
name = "package"
size = 3

[[variables]]
values = ["door open", "door closed"]

[[landmarks]]
name = "truck-market"
facts = [[0, 1]]

[[landmarks]]
name = "package-loaded"
kind = "disjunctive"
facts = [[1, 1], [1, 2]]

[[landmarks]]
name = "ready"
kind = "conjunctive"
facts = [[0, 0], [2, 0]]
goal = true

[[orderings]]
from = "ready"
to = "truck-market"
type = "greedy-necessary"

[[orderings]]
from = "truck-market"
to = "package-loaded"
type = "natural"
`

func TestRead(t *testing.T) {
	l, err := Read(strings.NewReader(logisticsTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	g := l.Graph

	if got := g.NumLandmarks(); got != 3 {
		t.Errorf("NumLandmarks() = %d, want 3", got)
	}
	if got := g.NumDisjunctive(); got != 1 {
		t.Errorf("NumDisjunctive() = %d, want 1", got)
	}
	if got := g.NumConjunctive(); got != 1 {
		t.Errorf("NumConjunctive() = %d, want 1", got)
	}
	if got := g.NumEdges(); got != 2 {
		t.Errorf("NumEdges() = %d, want 2", got)
	}
	if !g.IDsFresh() {
		t.Error("IDsFresh() = false after Read")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	ready, _ := g.Node(l.Names["ready"])
	if !ready.Landmark().TrueInGoal() {
		t.Error("ready.TrueInGoal() = false, want true")
	}
	if typ, ok := g.Edge(l.Names["ready"], l.Names["truck-market"]); !ok || typ != landmarks.EdgeGreedyNecessary {
		t.Errorf("Edge(ready, truck-market) = %v, %v, want %v, true", typ, ok, landmarks.EdgeGreedyNecessary)
	}

	tests := []struct {
		fact landmarks.Fact
		want string
	}{
		{landmarks.Fact{Var: 0, Value: 1}, "at market"},
		{landmarks.Fact{Var: 1, Value: 2}, "package=2"},
		{landmarks.Fact{Var: 2, Value: 0}, "door open"},
		{landmarks.Fact{Var: 7, Value: 0}, "var7=0"},
	}
	for _, tt := range tests {
		if got := l.Variables.FactName(tt.fact); got != tt.want {
			t.Errorf("FactName(%v) = %q, want %q", tt.fact, got, tt.want)
		}
	}
}

func TestReadJSON(t *testing.T) {
	const desc = `{
  "variables": [{"name": "v", "size": 2}],
  "landmarks": [
    {"name": "a", "facts": [[0, 0]]},
    {"name": "b", "facts": [[0, 1]]}
  ],
  "orderings": [{"from": "a", "to": "b", "type": "necessary"}]
}`
	l, err := Read(strings.NewReader(desc), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got := l.Graph.NumEdges(); got != 1 {
		t.Errorf("NumEdges() = %d, want 1", got)
	}
	if typ, _ := l.Graph.Edge(l.Names["a"], l.Names["b"]); typ != landmarks.EdgeNecessary {
		t.Errorf("Edge(a, b) = %v, want %v", typ, landmarks.EdgeNecessary)
	}
}

func TestReadMerges(t *testing.T) {
	const desc = `
[[variables]]
size = 4

[[landmarks]]
name = "s1"
facts = [[0, 0]]

[[landmarks]]
name = "s2"
facts = [[0, 0]]

[[landmarks]]
name = "d1"
kind = "disjunctive"
facts = [[0, 1], [0, 2]]

[[landmarks]]
name = "d2"
kind = "disjunctive"
facts = [[0, 2], [0, 1], [0, 2]]
`
	l, err := Read(strings.NewReader(desc), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got := l.Graph.NumLandmarks(); got != 2 {
		t.Errorf("NumLandmarks() = %d, want 2", got)
	}
	if l.Names["s1"] != l.Names["s2"] {
		t.Errorf("s1 = %v, s2 = %v, want same node", l.Names["s1"], l.Names["s2"])
	}
	if l.Names["d1"] != l.Names["d2"] {
		t.Errorf("d1 = %v, d2 = %v, want same node", l.Names["d1"], l.Names["d2"])
	}
}

func TestReadOrderingStrength(t *testing.T) {
	const desc = `
[[variables]]
size = 2

[[landmarks]]
name = "a"
facts = [[0, 0]]

[[landmarks]]
name = "b"
facts = [[0, 1]]

[[orderings]]
from = "a"
to = "b"
type = "natural"

[[orderings]]
from = "a"
to = "b"
type = "reasonable"

[[orderings]]
from = "b"
to = "a"
type = "reasonable"
`
	l, err := Read(strings.NewReader(desc), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	a, b := l.Names["a"], l.Names["b"]
	if typ, ok := l.Graph.Edge(a, b); !ok || typ != landmarks.EdgeNatural {
		t.Errorf("Edge(a, b) = %v, %v, want natural, true", typ, ok)
	}
	if _, ok := l.Graph.Edge(b, a); ok {
		t.Error("Edge(b, a) present, want dropped in favour of the stronger opposite ordering")
	}
}

func TestReadErrors(t *testing.T) {
	const vars = "[[variables]]\nsize = 3\n\n"
	tests := []struct {
		name string
		desc string
		code lmerrors.Code
	}{
		{
			name: "unknown value",
			desc: vars + "[[landmarks]]\nname = \"a\"\nfacts = [[0, 3]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "unknown variable",
			desc: vars + "[[landmarks]]\nname = \"a\"\nfacts = [[1, 0]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "malformed fact",
			desc: vars + "[[landmarks]]\nname = \"a\"\nfacts = [[0]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "simple with two facts",
			desc: vars + "[[landmarks]]\nname = \"a\"\nfacts = [[0, 0], [0, 1]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "unknown kind",
			desc: vars + "[[landmarks]]\nname = \"a\"\nkind = \"maybe\"\nfacts = [[0, 0]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "disjunction of one fact",
			desc: vars + "[[landmarks]]\nname = \"a\"\nkind = \"disjunctive\"\nfacts = [[0, 0], [0, 0]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "overlapping disjunctions",
			desc: vars +
				"[[landmarks]]\nname = \"a\"\nkind = \"disjunctive\"\nfacts = [[0, 0], [0, 1]]\n" +
				"[[landmarks]]\nname = \"b\"\nkind = \"disjunctive\"\nfacts = [[0, 1], [0, 2]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "simple covered by disjunction",
			desc: vars +
				"[[landmarks]]\nname = \"a\"\nkind = \"disjunctive\"\nfacts = [[0, 0], [0, 1]]\n" +
				"[[landmarks]]\nname = \"b\"\nfacts = [[0, 1]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "disjunction over simple",
			desc: vars +
				"[[landmarks]]\nname = \"a\"\nfacts = [[0, 1]]\n" +
				"[[landmarks]]\nname = \"b\"\nkind = \"disjunctive\"\nfacts = [[0, 1], [0, 2]]\n",
			code: lmerrors.ErrCodeInvalidLandmark,
		},
		{
			name: "duplicate name",
			desc: vars +
				"[[landmarks]]\nname = \"a\"\nfacts = [[0, 0]]\n" +
				"[[landmarks]]\nname = \"a\"\nfacts = [[0, 1]]\n",
			code: lmerrors.ErrCodeInvalidInput,
		},
		{
			name: "empty name",
			desc: vars + "[[landmarks]]\nfacts = [[0, 0]]\n",
			code: lmerrors.ErrCodeInvalidInput,
		},
		{
			name: "empty domain",
			desc: "[[variables]]\nname = \"v\"\n",
			code: lmerrors.ErrCodeInvalidInput,
		},
		{
			name: "unknown ordering endpoint",
			desc: vars +
				"[[landmarks]]\nname = \"a\"\nfacts = [[0, 0]]\n" +
				"[[orderings]]\nfrom = \"a\"\nto = \"b\"\ntype = \"natural\"\n",
			code: lmerrors.ErrCodeInvalidOrdering,
		},
		{
			name: "self ordering through alias",
			desc: vars +
				"[[landmarks]]\nname = \"a\"\nfacts = [[0, 0]]\n" +
				"[[landmarks]]\nname = \"b\"\nfacts = [[0, 0]]\n" +
				"[[orderings]]\nfrom = \"a\"\nto = \"b\"\ntype = \"natural\"\n",
			code: lmerrors.ErrCodeInvalidOrdering,
		},
		{
			name: "unknown ordering type",
			desc: vars +
				"[[landmarks]]\nname = \"a\"\nfacts = [[0, 0]]\n" +
				"[[landmarks]]\nname = \"b\"\nfacts = [[0, 1]]\n" +
				"[[orderings]]\nfrom = \"a\"\nto = \"b\"\ntype = \"weak\"\n",
			code: lmerrors.ErrCodeInvalidOrdering,
		},
		{
			name: "unknown key",
			desc: vars + "[[landmarks]]\nname = \"a\"\nfacts = [[0, 0]]\ncolour = \"red\"\n",
			code: lmerrors.ErrCodeInvalidFormat,
		},
		{
			name: "malformed toml",
			desc: "[[landmarks]\n",
			code: lmerrors.ErrCodeInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.desc), FormatTOML)
			if err == nil {
				t.Fatal("Read() succeeded, want error")
			}
			if got := lmerrors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %s, want %s (err: %v)", got, tt.code, err)
			}
			if !lmerrors.IsInputError(err) {
				t.Errorf("IsInputError(%v) = false", err)
			}
		})
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "task.toml")
	if err := os.WriteFile(path, []byte(logisticsTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error: %v", err)
	}
	if got := l.Graph.NumLandmarks(); got != 3 {
		t.Errorf("NumLandmarks() = %d, want 3", got)
	}

	_, err = ImportFile(filepath.Join(dir, "missing.toml"))
	if !lmerrors.Is(err, lmerrors.ErrCodeFileNotFound) {
		t.Errorf("ImportFile(missing) error = %v, want %s", err, lmerrors.ErrCodeFileNotFound)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"task.json", FormatJSON},
		{"TASK.JSON", FormatJSON},
		{"task.toml", FormatTOML},
		{"task", FormatTOML},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}

	if f, err := ParseFormat(""); err != nil || f != FormatTOML {
		t.Errorf("ParseFormat(\"\") = %s, %v, want toml, nil", f, err)
	}
	if _, err := ParseFormat("yaml"); !lmerrors.Is(err, lmerrors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(yaml) error = %v, want %s", err, lmerrors.ErrCodeInvalidFormat)
	}
}
