package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/neuron/internal/graph"
	"github.com/specialistvlad/neuron/internal/hclutil"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// supportedSyntax is appended to every "unsupported" diagnostic.
const supportedSyntax = "Expressions may use numbers, value names, parentheses, the operators + - * / and the functions neg, pow and relu."

// lowerer appends the nodes for value expressions to a graph.
type lowerer struct {
	g *graph.Graph
	// nodes holds every value compiled so far.
	nodes map[string]nodeid.ID
}

// lower returns the node computing expr. Sub-expressions that reference no
// values and call no functions are folded into a single constant.
func (l *lowerer) lower(expr hcl.Expression) (nodeid.ID, hcl.Diagnostics) {
	if len(expr.Variables()) == 0 {
		if val, diags := expr.Value(nil); !diags.HasErrors() {
			f, numDiags := numberFromCty(val, expr.Range().Ptr())
			if numDiags.HasErrors() {
				return nodeid.Invalid, numDiags
			}
			return l.g.Constant(f), nil
		}
	}

	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return l.lower(e.Expression)

	case *hclsyntax.ScopeTraversalExpr:
		return l.reference(e)

	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return nodeid.Invalid, unsupported("Unsupported operator", e.SrcRange)
		}
		x, diags := l.lower(e.Val)
		if diags.HasErrors() {
			return nodeid.Invalid, diags
		}
		return l.g.Neg(x), nil

	case *hclsyntax.BinaryOpExpr:
		return l.binary(e)

	case *hclsyntax.FunctionCallExpr:
		return l.call(e)

	default:
		return nodeid.Invalid, unsupported("Unsupported expression", expr.Range())
	}
}

// reference resolves a bare value name to its node.
func (l *lowerer) reference(e *hclsyntax.ScopeTraversalExpr) (nodeid.ID, hcl.Diagnostics) {
	if len(e.Traversal) != 1 {
		return nodeid.Invalid, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported attribute access",
			Detail:   fmt.Sprintf("Values are scalars; %q must be a plain value name.", hclutil.TraversalKey(e.Traversal)),
			Subject:  e.SrcRange.Ptr(),
		}}
	}

	name := e.Traversal.RootName()
	id, ok := l.nodes[name]
	if !ok {
		return nodeid.Invalid, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Reference to undeclared value",
			Detail:   fmt.Sprintf("There is no value named %q.", name),
			Subject:  e.SrcRange.Ptr(),
		}}
	}
	return id, nil
}

// binary lowers the arithmetic operators.
func (l *lowerer) binary(e *hclsyntax.BinaryOpExpr) (nodeid.ID, hcl.Diagnostics) {
	var build func(a, b nodeid.ID) nodeid.ID
	switch e.Op {
	case hclsyntax.OpAdd:
		build = l.g.Add
	case hclsyntax.OpSubtract:
		build = l.g.Sub
	case hclsyntax.OpMultiply:
		build = l.g.Mul
	case hclsyntax.OpDivide:
		build = l.g.Div
	default:
		return nodeid.Invalid, unsupported("Unsupported operator", e.SrcRange)
	}

	lhs, diags := l.lower(e.LHS)
	if diags.HasErrors() {
		return nodeid.Invalid, diags
	}
	rhs, diags := l.lower(e.RHS)
	if diags.HasErrors() {
		return nodeid.Invalid, diags
	}
	return build(lhs, rhs), nil
}

// call lowers the built-in functions.
func (l *lowerer) call(e *hclsyntax.FunctionCallExpr) (nodeid.ID, hcl.Diagnostics) {
	var arity int
	switch e.Name {
	case "relu", "neg":
		arity = 1
	case "pow":
		arity = 2
	default:
		return nodeid.Invalid, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Call to unknown function",
			Detail:   fmt.Sprintf("There is no function named %q. %s", e.Name, supportedSyntax),
			Subject:  e.NameRange.Ptr(),
		}}
	}

	if e.ExpandFinal || len(e.Args) != arity {
		return nodeid.Invalid, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Wrong number of arguments",
			Detail:   fmt.Sprintf("Function %q expects %d argument(s).", e.Name, arity),
			Subject:  e.Range().Ptr(),
		}}
	}

	args := make([]nodeid.ID, arity)
	for i, arg := range e.Args {
		id, diags := l.lower(arg)
		if diags.HasErrors() {
			return nodeid.Invalid, diags
		}
		args[i] = id
	}

	switch e.Name {
	case "relu":
		return l.g.Relu(args[0]), nil
	case "neg":
		return l.g.Neg(args[0]), nil
	default:
		return l.g.Pow(args[0], args[1]), nil
	}
}

func unsupported(summary string, rng hcl.Range) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   supportedSyntax,
		Subject:  rng.Ptr(),
	}}
}
