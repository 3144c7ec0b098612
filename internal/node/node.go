package node

import (
	"fmt"

	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Node is a single vertex in the computation graph: a scalar produced either
// by the user (a leaf) or by an operation over earlier nodes.
//
// Nodes are owned by the graph arena and only handed out as copies, so a
// Node value is a read-only snapshot.
type Node struct {
	// ID is the node's identity inside its arena.
	ID nodeid.ID
	// Value is fixed at creation and never changes.
	Value float64
	// Grad accumulates d(terminal)/d(this node) during a backward pass.
	Grad float64
	// Label is for display only. Empty means unlabeled.
	Label string
	// Op is the operation that produced the node.
	Op Op
	// Parents holds the operands in order. The same ID may appear twice.
	Parents []nodeid.ID
}

// IsLeaf reports whether the node was created directly rather than by an
// operation.
func (n Node) IsLeaf() bool {
	return n.Op == None
}

// String renders the node as `<label>| op:<op>, v:<value>, g:<gradient>`.
func (n Node) String() string {
	return fmt.Sprintf("%s| op:%s, v:%v, g:%v", n.Label, n.Op, n.Value, n.Grad)
}
