package hcl_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/neuron/internal/config"
	"github.com/specialistvlad/neuron/internal/ctxlog"
	"github.com/specialistvlad/neuron/internal/dag"
	"github.com/specialistvlad/neuron/internal/graph"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Compiler is the HCL-specific implementation of the config.Compiler
// interface.
type Compiler struct{}

// NewCompiler creates a new HCL compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile orders the model's values by their references and appends one
// node per value to g. Leaves and operation results are labeled with the
// value name; a value that merely aliases another keeps the original node
// and label.
func (c *Compiler) Compile(ctx context.Context, m *config.Model, g *graph.Graph) (*config.Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling graph definition.", "values", len(m.Values))

	order, diags := dependencyOrder(m)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to order values: %w", diags)
	}

	prog := &config.Program{
		Nodes:  make(map[string]nodeid.ID, len(order)),
		Order:  order,
		Target: nodeid.Invalid,
	}
	l := &lowerer{g: g, nodes: prog.Nodes}

	for _, name := range order {
		v := m.Lookup(name)

		var id nodeid.ID
		if v.IsLeaf() {
			id = g.Leaf(*v.Data, v.Name)
		} else {
			var lowerDiags hcl.Diagnostics
			id, lowerDiags = l.lower(v.Expr)
			if lowerDiags.HasErrors() {
				return nil, fmt.Errorf("failed to compile value %q: %w", name, lowerDiags)
			}
			if !isAlias(v.Expr) {
				g.SetLabel(id, v.Name)
			}
		}

		prog.Nodes[name] = id
		logger.Debug("Value compiled.", "value", name, "node", id.String(), "op", g.Op(id).String())
	}

	if m.Backward != nil {
		id, ok := prog.Nodes[m.Backward.Target]
		if !ok {
			return nil, fmt.Errorf("failed to resolve backward target: %w", hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unknown backward target",
				Detail:   fmt.Sprintf("There is no value named %q.", m.Backward.Target),
				Subject:  m.Backward.DeclRange.Ptr(),
			}})
		}
		prog.Target = id
	}

	logger.Debug("Graph definition compiled.", "values", len(order), "nodes", g.Len())
	return prog, nil
}

// dependencyOrder returns the value names with every value after the values
// its expression references.
func dependencyOrder(m *config.Model) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	deps := dag.New[string]()
	for _, v := range m.Values {
		deps.AddNode(v.Name)
	}

	for _, v := range m.Values {
		if v.IsLeaf() {
			continue
		}
		for _, traversal := range v.Expr.Variables() {
			ref := traversal.RootName()
			switch {
			case ref == v.Name:
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Self-referencing value",
					Detail:   fmt.Sprintf("Value %q cannot refer to itself.", v.Name),
					Subject:  traversal.SourceRange().Ptr(),
				})
			case !deps.Has(ref):
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Reference to undeclared value",
					Detail:   fmt.Sprintf("There is no value named %q.", ref),
					Subject:  traversal.SourceRange().Ptr(),
				})
			default:
				if err := deps.AddEdge(ref, v.Name); err != nil {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Invalid reference",
						Detail:   err.Error(),
						Subject:  traversal.SourceRange().Ptr(),
					})
				}
			}
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	if err := deps.DetectCycles(); err != nil {
		diag := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Dependency cycle",
			Detail:   fmt.Sprintf("Values must not depend on themselves through other values: %s.", err),
		}
		var cycle *dag.CycleError[string]
		if errors.As(err, &cycle) {
			diag.Detail = fmt.Sprintf("Value %q depends on itself through other values.", cycle.Node)
			diag.Subject = m.Lookup(cycle.Node).DeclRange.Ptr()
		}
		return nil, hcl.Diagnostics{diag}
	}

	order, err := deps.Sort()
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value ordering",
			Detail:   err.Error(),
		}}
	}
	return order, nil
}

// isAlias reports whether expr is a plain reference, possibly in
// parentheses.
func isAlias(expr hcl.Expression) bool {
	for {
		switch e := expr.(type) {
		case *hclsyntax.ParenthesesExpr:
			expr = e.Expression
		case *hclsyntax.ScopeTraversalExpr:
			return len(e.Traversal) == 1
		default:
			return false
		}
	}
}
