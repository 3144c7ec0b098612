package graph

import (
	"math"

	"github.com/specialistvlad/neuron/internal/node"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// binary appends an operation node over two existing operands.
func (g *Graph) binary(op node.Op, value float64, a, b nodeid.ID) nodeid.ID {
	return g.push(node.Node{Value: value, Op: op, Parents: []nodeid.ID{a, b}})
}

// Add appends a + b. Passing the same ID twice is allowed.
func (g *Graph) Add(a, b nodeid.ID) nodeid.ID {
	return g.binary(node.Add, g.Value(a)+g.Value(b), a, b)
}

// Mul appends a * b. Passing the same ID twice is allowed.
func (g *Graph) Mul(a, b nodeid.ID) nodeid.ID {
	return g.binary(node.Mul, g.Value(a)*g.Value(b), a, b)
}

// Pow appends base ^ exponent. Only the base receives a gradient.
func (g *Graph) Pow(base, exponent nodeid.ID) nodeid.ID {
	return g.binary(node.Pow, math.Pow(g.Value(base), g.Value(exponent)), base, exponent)
}

// Relu appends max(0, x).
func (g *Graph) Relu(x nodeid.ID) nodeid.ID {
	v := g.Value(x)
	if v < 0 {
		v = 0
	}
	return g.push(node.Node{Value: v, Op: node.Relu, Parents: []nodeid.ID{x}})
}

// Neg appends -x as x * -1.
func (g *Graph) Neg(x nodeid.ID) nodeid.ID {
	return g.Mul(x, g.Constant(-1))
}

// Sub appends a - b as a + (-b).
func (g *Graph) Sub(a, b nodeid.ID) nodeid.ID {
	return g.Add(a, g.Neg(b))
}

// Div appends a / b as a * b^-1. Division by zero yields an infinite value.
func (g *Graph) Div(a, b nodeid.ID) nodeid.ID {
	return g.Mul(a, g.Pow(b, g.Constant(-1)))
}

// Sum folds the terms left to right with Add. An empty sum is a constant 0.
func (g *Graph) Sum(terms ...nodeid.ID) nodeid.ID {
	if len(terms) == 0 {
		return g.Constant(0)
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = g.Add(acc, t)
	}
	return acc
}
