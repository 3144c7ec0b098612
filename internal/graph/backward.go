package graph

import (
	"fmt"

	"github.com/specialistvlad/neuron/internal/dag"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Backward computes d(root)/d(n) for every node n reachable from root and
// adds it to n's gradient. The root's own gradient is set to 1, not added.
//
// Nodes that do not contribute to root are left untouched.
func (g *Graph) Backward(root nodeid.ID) {
	order := g.Order(root)

	g.nodes[root].Grad = 1
	for _, id := range order {
		g.propagate(id)
	}
}

// Order returns the nodes reachable from root in the order Backward visits
// them: root first, and every node after all of its consumers.
func (g *Graph) Order(root nodeid.ID) []nodeid.ID {
	g.lookup(root)

	order, err := dag.ReverseTopological(root, g.parentsOf)
	if err != nil {
		// The arena only links to earlier nodes, so this cannot happen
		// through the public API.
		panic(fmt.Errorf("graph: ordering from %s: %w", root, err))
	}
	return order
}

// parentsOf returns the stored parent slice without copying. Callers must
// not modify it.
func (g *Graph) parentsOf(id nodeid.ID) []nodeid.ID {
	return g.nodes[id].Parents
}
