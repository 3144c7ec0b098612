package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Model is the unified, format-agnostic representation of every value
// definition found in the loaded files.
type Model struct {
	// Values in declaration order. Names are unique.
	Values []*Value
	// Backward is nil when no target was declared.
	Backward *Backward

	// byName indexes Values. It is rebuilt when Values was changed directly.
	byName map[string]*Value
}

// Value is one named scalar. Exactly one of Data and Expr is set.
type Value struct {
	Name      string
	Data      *float64
	Expr      hcl.Expression
	DeclRange hcl.Range
}

// IsLeaf reports whether the value is a literal rather than an expression.
func (v *Value) IsLeaf() bool {
	return v.Data != nil
}

// Backward names the value whose gradient pass should be run.
type Backward struct {
	Target    string
	DeclRange hcl.Range
}

// Add appends v. If a value with the same name exists, v is not added and
// the existing value is returned with false.
func (m *Model) Add(v *Value) (*Value, bool) {
	if prev := m.Lookup(v.Name); prev != nil {
		return prev, false
	}
	m.Values = append(m.Values, v)
	m.byName[v.Name] = v
	return v, true
}

// Lookup returns the value with the given name, or nil.
func (m *Model) Lookup(name string) *Value {
	m.index()
	return m.byName[name]
}

func (m *Model) index() {
	if m.byName != nil && len(m.byName) == len(m.Values) {
		return
	}
	m.byName = make(map[string]*Value, len(m.Values))
	for _, v := range m.Values {
		if _, ok := m.byName[v.Name]; !ok {
			m.byName[v.Name] = v
		}
	}
}

// Program is the result of lowering a Model onto a graph.
type Program struct {
	// Nodes maps each value name to its node. An expression that is a bare
	// reference shares the referenced node.
	Nodes map[string]nodeid.ID
	// Order lists value names with every value after the values it uses.
	Order []string
	// Target is nodeid.Invalid when the model has no backward block.
	Target nodeid.ID
}

// HasTarget reports whether a backward target was compiled.
func (p *Program) HasTarget() bool {
	return p.Target.Valid()
}
