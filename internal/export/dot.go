package export

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"
)

// dotName is the digraph name in rendered output.
const dotName = "neuron"

// attributes is a fixed attribute list.
type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute { return a }

// dotGraph adds global layout attributes to the multigraph.
type dotGraph struct {
	*multi.DirectedGraph
}

func (dotGraph) DOTAttributers() (g, n, e encoding.Attributer) {
	return attributes{{Key: "rankdir", Value: "LR"}},
		attributes{{Key: "fontname", Value: "monospace"}},
		attributes{}
}

// dotNode is a snapshot node as a gonum graph node.
type dotNode struct {
	info NodeInfo
	root bool
}

func (n dotNode) ID() int64     { return n.info.ID.Int64() }
func (n dotNode) DOTID() string { return n.info.ID.String() }
func (n dotNode) Attributes() []encoding.Attribute {
	shape := "box"
	if n.info.Op == "" {
		shape = "ellipse"
	}
	attrs := []encoding.Attribute{
		{Key: "label", Value: n.info.Display},
		{Key: "shape", Value: shape},
	}
	if n.root {
		attrs = append(attrs, encoding.Attribute{Key: "style", Value: "bold"})
	}
	return attrs
}

// dotLine is one operand edge. Parallel lines between the same pair of
// nodes are kept, which is why the graph is a multigraph.
type dotLine struct {
	from, to graph.Node
	uid      int64
	slot     int
}

func (l dotLine) From() graph.Node { return l.from }
func (l dotLine) To() graph.Node   { return l.to }
func (l dotLine) ID() int64        { return l.uid }
func (l dotLine) ReversedLine() graph.Line {
	l.from, l.to = l.to, l.from
	return l
}
func (l dotLine) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: strconv.Itoa(l.slot)}}
}

// WriteDOT writes the snapshot as a Graphviz digraph. Edges point from
// operand to result and are labeled with the operand slot.
func WriteDOT(w io.Writer, s Snapshot) error {
	g := dotGraph{multi.NewDirectedGraph()}

	nodes := make(map[int64]dotNode, len(s.Nodes))
	for _, info := range s.Nodes {
		n := dotNode{info: info, root: info.ID == s.Root}
		g.AddNode(n)
		nodes[n.ID()] = n
	}

	for i, e := range s.Edges {
		from, ok := nodes[e.From.Int64()]
		if !ok {
			return fmt.Errorf("edge %d references unknown node %s", i, e.From)
		}
		to, ok := nodes[e.To.Int64()]
		if !ok {
			return fmt.Errorf("edge %d references unknown node %s", i, e.To)
		}
		g.SetLine(dotLine{from: from, to: to, uid: int64(i), slot: e.Slot})
	}

	b, err := dot.MarshalMulti(g, dotName, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to render DOT: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("failed to write DOT: %w", err)
	}
	return nil
}
