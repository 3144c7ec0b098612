package mlp

import (
	"fmt"
	"math/rand"

	"github.com/specialistvlad/neuron/internal/graph"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// Neuron computes relu(bias + sum(w[i] * x[i])).
type Neuron struct {
	Weights []nodeid.ID
	Bias    nodeid.ID
}

// NewNeuron creates a neuron with nin weights. Weights and bias are drawn
// uniformly from [-1, 1).
func NewNeuron(g *graph.Graph, nin int, rng *rand.Rand) *Neuron {
	n := &Neuron{Weights: make([]nodeid.ID, nin)}
	for i := range n.Weights {
		n.Weights[i] = g.Leaf(uniform(rng), fmt.Sprintf("w%d", i))
	}
	n.Bias = g.Leaf(uniform(rng), "b")
	return n
}

// Forward appends the neuron's activation for the given inputs.
func (n *Neuron) Forward(g *graph.Graph, inputs []nodeid.ID) nodeid.ID {
	acc := n.Bias
	for i, x := range inputs {
		acc = g.Add(acc, g.Mul(x, n.Weights[i]))
	}
	return g.Relu(acc)
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []nodeid.ID {
	return append(append([]nodeid.ID{}, n.Weights...), n.Bias)
}

// Layer is a row of neurons sharing the same inputs.
type Layer struct {
	Neurons []*Neuron
}

// NewLayer creates nout neurons with nin inputs each.
func NewLayer(g *graph.Graph, nin, nout int, rng *rand.Rand) *Layer {
	l := &Layer{Neurons: make([]*Neuron, nout)}
	for i := range l.Neurons {
		l.Neurons[i] = NewNeuron(g, nin, rng)
	}
	return l
}

// Forward appends one activation per neuron.
func (l *Layer) Forward(g *graph.Graph, inputs []nodeid.ID) []nodeid.ID {
	out := make([]nodeid.ID, len(l.Neurons))
	for i, n := range l.Neurons {
		out[i] = n.Forward(g, inputs)
	}
	return out
}

// Parameters returns the parameters of every neuron in order.
func (l *Layer) Parameters() []nodeid.ID {
	var params []nodeid.ID
	for _, n := range l.Neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// MLP is a stack of layers where each layer feeds the next.
type MLP struct {
	g      *graph.Graph
	nin    int
	Layers []*Layer
}

// New creates a network with nin inputs and one layer per entry in sizes.
func New(g *graph.Graph, nin int, sizes []int, rng *rand.Rand) (*MLP, error) {
	if nin <= 0 {
		return nil, fmt.Errorf("input count must be positive, got %d", nin)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("at least one layer size is required")
	}

	m := &MLP{g: g, nin: nin}
	prev := nin
	for i, size := range sizes {
		if size <= 0 {
			return nil, fmt.Errorf("layer %d size must be positive, got %d", i, size)
		}
		m.Layers = append(m.Layers, NewLayer(g, prev, size, rng))
		prev = size
	}
	return m, nil
}

// Forward turns xs into input leaves labeled x0..xn and runs every layer.
func (m *MLP) Forward(xs []float64) ([]nodeid.ID, error) {
	if len(xs) != m.nin {
		return nil, fmt.Errorf("expected %d inputs, got %d", m.nin, len(xs))
	}

	acts := make([]nodeid.ID, len(xs))
	for i, x := range xs {
		acts[i] = m.g.Leaf(x, fmt.Sprintf("x%d", i))
	}
	for _, l := range m.Layers {
		acts = l.Forward(m.g, acts)
	}
	return acts, nil
}

// Parameters returns every weight and bias in the network.
func (m *MLP) Parameters() []nodeid.ID {
	var params []nodeid.ID
	for _, l := range m.Layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// SquaredError appends sum((out[i] - target[i])^2) and labels it "loss".
func SquaredError(g *graph.Graph, outputs []nodeid.ID, targets []float64) (nodeid.ID, error) {
	if len(outputs) != len(targets) {
		return nodeid.Invalid, fmt.Errorf("got %d outputs but %d targets", len(outputs), len(targets))
	}

	terms := make([]nodeid.ID, len(outputs))
	for i, out := range outputs {
		diff := g.Sub(out, g.Constant(targets[i]))
		terms[i] = g.Mul(diff, diff)
	}
	loss := g.Sum(terms...)
	g.SetLabel(loss, "loss")
	return loss, nil
}

// uniform draws from [-1, 1).
func uniform(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
