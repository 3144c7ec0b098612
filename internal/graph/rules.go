package graph

import (
	"fmt"
	"math"

	"github.com/specialistvlad/neuron/internal/node"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// propagate applies the local-gradient rule of one node, adding its share
// of the upstream gradient into each parent.
func (g *Graph) propagate(id nodeid.ID) {
	n := &g.nodes[id]
	upstream := n.Grad

	switch n.Op {
	case node.None:
		// Leaves have no parents.

	case node.Add:
		a, b := n.Parents[0], n.Parents[1]
		if a == b {
			g.nodes[a].Grad += 2 * upstream
			return
		}
		g.nodes[a].Grad += upstream
		g.nodes[b].Grad += upstream

	case node.Mul:
		a, b := n.Parents[0], n.Parents[1]
		va, vb := g.nodes[a].Value, g.nodes[b].Value
		// With a == b both lines hit the same node, adding 2*v*upstream.
		g.nodes[a].Grad += vb * upstream
		g.nodes[b].Grad += va * upstream

	case node.Pow:
		base := &g.nodes[n.Parents[0]]
		e := g.nodes[n.Parents[1]].Value
		base.Grad += e * math.Pow(base.Value, e-1) * upstream

	case node.Relu:
		// Strictly positive: an input of exactly 0 passes no gradient.
		p := &g.nodes[n.Parents[0]]
		if p.Value > 0 {
			p.Grad += upstream
		}

	default:
		panic(fmt.Sprintf("graph: node %s has unknown op %d", id, int(n.Op)))
	}
}
