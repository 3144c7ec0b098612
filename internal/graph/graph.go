package graph

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/neuron/internal/node"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Graph owns every node of one computation. The zero value is not usable;
// create graphs with New.
type Graph struct {
	nodes []node.Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Leaf appends an input node with the given value and label. Every call
// creates a distinct node, even for repeated values.
func (g *Graph) Leaf(value float64, label string) nodeid.ID {
	return g.push(node.Node{Value: value, Label: label})
}

// Constant appends an unlabeled leaf.
func (g *Graph) Constant(value float64) nodeid.ID {
	return g.Leaf(value, "")
}

// push appends n, assigning it the next ID. Parents must already be in the
// arena, which keeps every graph acyclic.
func (g *Graph) push(n node.Node) nodeid.ID {
	id := nodeid.ID(len(g.nodes))
	if len(n.Parents) != n.Op.Arity() {
		panic(fmt.Sprintf("graph: op %q takes %d parents, got %d", n.Op, n.Op.Arity(), len(n.Parents)))
	}
	for _, p := range n.Parents {
		g.lookup(p)
	}
	n.ID = id
	g.nodes = append(g.nodes, n)
	return id
}

// lookup returns the stored node. Unknown IDs are a programming error.
func (g *Graph) lookup(id nodeid.ID) *node.Node {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("graph: unknown node %d (graph has %d nodes)", id, len(g.nodes)))
	}
	return &g.nodes[id]
}

// Node returns a copy of the node. Mutating the copy does not affect the
// graph.
func (g *Graph) Node(id nodeid.ID) node.Node {
	n := *g.lookup(id)
	n.Parents = slices.Clone(n.Parents)
	return n
}

// Value returns the node's value.
func (g *Graph) Value(id nodeid.ID) float64 {
	return g.lookup(id).Value
}

// Gradient returns the node's accumulated gradient.
func (g *Graph) Gradient(id nodeid.ID) float64 {
	return g.lookup(id).Grad
}

// Label returns the node's label, or "" if it has none.
func (g *Graph) Label(id nodeid.ID) string {
	return g.lookup(id).Label
}

// SetLabel replaces the node's label. Labels have no effect on computation.
func (g *Graph) SetLabel(id nodeid.ID, label string) {
	g.lookup(id).Label = label
}

// Op returns the operation that produced the node.
func (g *Graph) Op(id nodeid.ID) node.Op {
	return g.lookup(id).Op
}

// Parents returns a copy of the node's ordered parent IDs.
func (g *Graph) Parents(id nodeid.ID) []nodeid.ID {
	return slices.Clone(g.lookup(id).Parents)
}

// ZeroGrad resets a single node's gradient.
func (g *Graph) ZeroGrad(id nodeid.ID) {
	g.lookup(id).Grad = 0
}

// ZeroGrads resets the gradient of every node in the graph.
func (g *Graph) ZeroGrads() {
	for i := range g.nodes {
		g.nodes[i].Grad = 0
	}
}
