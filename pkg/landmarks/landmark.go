package landmarks

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrTooFewFacts is returned by [NewDisjunctive] and [NewConjunctive] when
// fewer than two distinct facts are given. A disjunction or conjunction over a
// single fact is a simple landmark and must be built with [Simple].
var ErrTooFewFacts = errors.New("disjunctive and conjunctive landmarks need at least two distinct facts")

// Fact is a grounded proposition: variable Var takes value Value.
// Facts are comparable and used directly as map keys.
type Fact struct {
	Var   int
	Value int
}

// String renders the fact as "(var, value)".
func (f Fact) String() string { return fmt.Sprintf("(%d, %d)", f.Var, f.Value) }

// Compare orders facts by variable, then by value.
func (f Fact) Compare(o Fact) int {
	if c := cmp.Compare(f.Var, o.Var); c != 0 {
		return c
	}
	return cmp.Compare(f.Value, o.Value)
}

// Kind distinguishes the three landmark shapes.
type Kind int

const (
	// KindSimple is a landmark over exactly one fact.
	KindSimple Kind = iota
	// KindDisjunctive is satisfied as soon as any one of its facts holds.
	KindDisjunctive
	// KindConjunctive is satisfied only when all of its facts hold at once.
	KindConjunctive
)

var kindNames = map[Kind]string{
	KindSimple:      "simple",
	KindDisjunctive: "disjunctive",
	KindConjunctive: "conjunctive",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the lower-case name of a kind as printed by [Kind.String].
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown landmark kind %q", s)
}

// Landmark is an immutable description of one landmark: its kind and the
// facts it is built from. The zero value is not a valid landmark; use
// [Simple], [NewDisjunctive] or [NewConjunctive].
type Landmark struct {
	kind       Kind
	facts      []Fact
	trueInGoal bool
}

// Simple returns the landmark consisting of the single fact f.
func Simple(f Fact) Landmark {
	return Landmark{kind: KindSimple, facts: []Fact{f}}
}

// NewDisjunctive returns a landmark satisfied by any of facts.
// Duplicates are dropped and the facts are stored in sorted order.
func NewDisjunctive(facts ...Fact) (Landmark, error) {
	return newCompound(KindDisjunctive, facts)
}

// NewConjunctive returns a landmark satisfied only when all facts hold.
// Duplicates are dropped and the facts are stored in sorted order.
func NewConjunctive(facts ...Fact) (Landmark, error) {
	return newCompound(KindConjunctive, facts)
}

func newCompound(kind Kind, facts []Fact) (Landmark, error) {
	fs := slices.Clone(facts)
	slices.SortFunc(fs, Fact.Compare)
	fs = slices.Compact(fs)
	if len(fs) < 2 {
		return Landmark{}, ErrTooFewFacts
	}
	return Landmark{kind: kind, facts: fs}, nil
}

// WithTrueInGoal returns a copy of l marked as holding in the goal.
func (l Landmark) WithTrueInGoal() Landmark {
	l.trueInGoal = true
	return l
}

// TrueInGoal reports whether the landmark holds in the goal.
func (l Landmark) TrueInGoal() bool { return l.trueInGoal }

// Kind returns the landmark kind.
func (l Landmark) Kind() Kind { return l.kind }

// Len returns the number of facts.
func (l Landmark) Len() int { return len(l.facts) }

// Facts returns a copy of the landmark's facts.
func (l Landmark) Facts() []Fact { return slices.Clone(l.facts) }

// Contains reports whether f is one of the landmark's facts.
func (l Landmark) Contains(f Fact) bool { return slices.Contains(l.facts, f) }

// IsValid reports whether l was built by one of the constructors.
func (l Landmark) IsValid() bool {
	if l.kind == KindSimple {
		return len(l.facts) == 1
	}
	return len(l.facts) >= 2
}

// separator joins fact names in a label.
func (l Landmark) separator() string {
	switch l.kind {
	case KindDisjunctive:
		return " | "
	case KindConjunctive:
		return " & "
	}
	return ""
}

// Label joins the display names of the landmark's facts: with " | " for
// disjunctive, " & " for conjunctive landmarks. A simple landmark is
// labelled with the name of its only fact.
func (l Landmark) Label(names FactNamer) string {
	parts := make([]string, len(l.facts))
	for i, f := range l.facts {
		parts[i] = names.FactName(f)
	}
	return strings.Join(parts, l.separator())
}

// FactNamer provides human-readable names for facts. Implementations must be
// pure and safe for repeated calls.
type FactNamer interface {
	FactName(f Fact) string
}

// FactNamerFunc adapts a function to the [FactNamer] interface.
type FactNamerFunc func(Fact) string

// FactName calls fn(f).
func (fn FactNamerFunc) FactName(f Fact) string { return fn(f) }

// EdgeType is the strength of an ordering between two landmarks.
// Larger values are stronger orderings.
type EdgeType int

const (
	// EdgeReasonable orders landmarks heuristically; it may be violated.
	EdgeReasonable EdgeType = iota
	// EdgeNatural: the source must be true some time before the target.
	EdgeNatural
	// EdgeGreedyNecessary: the source must be true immediately before the
	// target is first achieved.
	EdgeGreedyNecessary
	// EdgeNecessary: the source must be true immediately before the target
	// is achieved, every time.
	EdgeNecessary
)

var edgeTypeNames = map[EdgeType]string{
	EdgeReasonable:      "reasonable",
	EdgeNatural:         "natural",
	EdgeGreedyNecessary: "greedy-necessary",
	EdgeNecessary:       "necessary",
}

func (t EdgeType) String() string {
	if s, ok := edgeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EdgeType(%d)", int(t))
}

// ParseEdgeType parses an ordering name as printed by [EdgeType.String].
// Underscores are accepted in place of dashes.
func ParseEdgeType(s string) (EdgeType, error) {
	norm := strings.ReplaceAll(strings.ToLower(s), "_", "-")
	for t, name := range edgeTypeNames {
		if norm == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown ordering type %q", s)
}
