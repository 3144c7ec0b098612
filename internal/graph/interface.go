package graph

import (
	"github.com/specialistvlad/neuron/internal/node"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Reader is the read-only view of a graph. Renderers and other consumers
// that only inspect nodes depend on it instead of on *Graph.
type Reader interface {
	// Node returns a copy of the node with the given ID.
	Node(id nodeid.ID) node.Node
	// Parents returns the ordered parent IDs of a node.
	Parents(id nodeid.ID) []nodeid.ID
	// Len returns the number of nodes in the graph.
	Len() int
}

var _ Reader = (*Graph)(nil)
