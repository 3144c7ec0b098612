// Package graph implements reverse-mode automatic differentiation over
// scalar values.
//
// # Model
//
// A Graph is an append-only arena of nodes. Every scalar, whether a user
// input, a parameter, a constant or the result of an operation, is a node
// addressed by a nodeid.ID. Operations never mutate their operands; they
// append a new node recording its value, the operation tag and the ordered
// IDs of its parents:
//
//	g := graph.New()
//	a := g.Leaf(2, "a")
//	b := g.Leaf(-3, "b")
//	e := g.Mul(a, b) // value -6, parents [a b]
//
// Because a parent always exists before its child, IDs increase along every
// edge and the arena can never contain a cycle.
//
// # Operators
//
// The primitive operators are Add, Mul, Pow and Relu. Neg is Mul by a
// constant -1 leaf, Sub is Add with a negated operand and Div is Mul by a
// -1 power. Composed operators create ordinary primitive nodes, so they
// need no rules of their own.
//
// # Backward pass
//
// Backward(root) seeds the root's gradient with 1 and applies each node's
// local-gradient rule once, in reverse topological order of the sub-graph
// reachable from the root. The order is computed by counting consumer edges
// (dag.ReverseTopological), which guarantees a node's gradient is complete
// before it is pushed to its parents even when the node is shared.
//
// Gradients accumulate. Call ZeroGrads (or ZeroGrad for single nodes)
// before running a second pass over the same graph.
//
// # Numeric behavior
//
// No operator returns an error. Pow on a negative base with a fractional
// exponent yields NaN, which then propagates through values and gradients
// like any other number.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent use. Build, differentiate and read it
// from a single goroutine, or guard it externally.
package graph
