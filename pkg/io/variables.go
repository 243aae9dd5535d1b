package io

import (
	"fmt"

	"github.com/matzehuels/lmgraph/pkg/landmarks"
)

// Variables names the facts of a planning task. It implements
// [landmarks.FactNamer].
type Variables struct {
	names  []string
	values [][]string
	sizes  []int
}

// NewVariables builds a variable table from description entries.
func NewVariables(specs []VariableSpec) *Variables {
	v := &Variables{
		names:  make([]string, len(specs)),
		values: make([][]string, len(specs)),
		sizes:  make([]int, len(specs)),
	}
	for i, s := range specs {
		v.names[i] = s.Name
		v.values[i] = s.Values
		v.sizes[i] = max(s.Size, len(s.Values))
	}
	return v
}

// Len returns the number of variables.
func (v *Variables) Len() int { return len(v.names) }

// DomainSize returns the number of values of variable i.
func (v *Variables) DomainSize(i int) int {
	if i < 0 || i >= len(v.sizes) {
		return 0
	}
	return v.sizes[i]
}

// Valid reports whether f refers to a declared variable and a value inside
// its domain.
func (v *Variables) Valid(f landmarks.Fact) bool {
	return f.Value >= 0 && f.Value < v.DomainSize(f.Var)
}

// FactName returns the declared name of f. Facts without a value name are
// rendered as "<variable>=<value>", using "var<i>" for unnamed variables.
func (v *Variables) FactName(f landmarks.Fact) string {
	if f.Var >= 0 && f.Var < len(v.values) {
		if vals := v.values[f.Var]; f.Value >= 0 && f.Value < len(vals) && vals[f.Value] != "" {
			return vals[f.Value]
		}
		if name := v.names[f.Var]; name != "" {
			return fmt.Sprintf("%s=%d", name, f.Value)
		}
	}
	return fmt.Sprintf("var%d=%d", f.Var, f.Value)
}

var _ landmarks.FactNamer = (*Variables)(nil)
