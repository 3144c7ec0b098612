package export

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/specialistvlad/neuron/internal/dag"
	"github.com/specialistvlad/neuron/internal/graph"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Snapshot is a rendering-ready copy of the sub-graph reachable from Root.
type Snapshot struct {
	Root  nodeid.ID  `json:"root"`
	Nodes []NodeInfo `json:"nodes"`
	Edges []Edge     `json:"edges"`
}

// NodeInfo describes one node of a Snapshot.
type NodeInfo struct {
	ID       nodeid.ID `json:"id"`
	Label    string    `json:"label,omitempty"`
	Op       string    `json:"op,omitempty"`
	Value    Number    `json:"value"`
	Gradient Number    `json:"gradient"`
	// Display is the node's canonical one-line form.
	Display string `json:"display"`
}

// Edge links a parent to the child that consumes it. Slot is the operand
// position inside the child.
type Edge struct {
	From nodeid.ID `json:"from"`
	To   nodeid.ID `json:"to"`
	Slot int       `json:"slot"`
}

// Number is a float64 that survives JSON encoding even when it is NaN or
// infinite. Non-finite values are written as the strings "NaN", "+Inf" and
// "-Inf".
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Build captures every node reachable from root. Nodes are listed by
// ascending ID, which is also creation order.
func Build(r graph.Reader, root nodeid.ID) (Snapshot, error) {
	reachable, err := dag.ReverseTopological(root, r.Parents)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to walk graph from %s: %w", root, err)
	}
	slices.Sort(reachable)

	snap := Snapshot{
		Root:  root,
		Nodes: make([]NodeInfo, 0, len(reachable)),
		Edges: []Edge{},
	}
	for _, id := range reachable {
		n := r.Node(id)
		snap.Nodes = append(snap.Nodes, NodeInfo{
			ID:       id,
			Label:    n.Label,
			Op:       n.Op.String(),
			Value:    Number(n.Value),
			Gradient: Number(n.Grad),
			Display:  n.String(),
		})
		for slot, p := range n.Parents {
			snap.Edges = append(snap.Edges, Edge{From: p, To: id, Slot: slot})
		}
	}

	return snap, nil
}

// parentsOf groups the edges by child, in slot order.
func (s Snapshot) parentsOf() map[nodeid.ID][]nodeid.ID {
	parents := make(map[nodeid.ID][]nodeid.ID)
	for _, e := range s.Edges {
		parents[e.To] = append(parents[e.To], e.From)
	}
	return parents
}
