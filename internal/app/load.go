package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/specialistvlad/neuron/internal/ctxlog"
	"github.com/specialistvlad/neuron/internal/mlp"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// built is the outcome of the build phase.
type built struct {
	root nodeid.ID
	// backward is false when the definition declared no target.
	backward bool
}

// buildDefinition loads and compiles the definition files. Without a
// backward block the last value in dependency order becomes the root and no
// gradients are computed.
func (a *App) buildDefinition(ctx context.Context) (built, error) {
	ctx = ctxlog.With(ctx, "graph_path", a.config.GraphPath)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph definition...")

	if a.loader == nil {
		return built{}, errors.New("no definition loader configured")
	}

	model, compiler, err := a.loader.Load(ctx, a.config.GraphPath)
	if err != nil {
		return built{}, fmt.Errorf("failed to load graph definition: %w", err)
	}
	if len(model.Values) == 0 {
		return built{}, errors.New("graph definition declares no values")
	}

	prog, err := compiler.Compile(ctx, model, a.graph)
	if err != nil {
		return built{}, fmt.Errorf("failed to compile graph definition: %w", err)
	}
	logger.Info("Graph definition compiled.", "values", len(prog.Order), "nodes", a.graph.Len())

	if prog.HasTarget() {
		return built{root: prog.Target, backward: true}, nil
	}

	last := prog.Order[len(prog.Order)-1]
	logger.Warn("No backward block found, gradients are left at zero.", "root", last)
	return built{root: prog.Nodes[last]}, nil
}

// buildMLP builds the configured network and its forward pass. With targets
// the root is the squared-error loss, otherwise the sum of the outputs.
func (a *App) buildMLP(ctx context.Context) (built, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building network...", "sizes", a.config.MLP, "seed", a.config.Seed)

	rng := rand.New(rand.NewSource(a.config.Seed))
	net, err := mlp.New(a.graph, a.config.MLP[0], a.config.MLP[1:], rng)
	if err != nil {
		return built{}, fmt.Errorf("failed to build network: %w", err)
	}

	outputs, err := net.Forward(a.config.Inputs)
	if err != nil {
		return built{}, fmt.Errorf("failed to run forward pass: %w", err)
	}

	var root nodeid.ID
	if len(a.config.Targets) > 0 {
		root, err = mlp.SquaredError(a.graph, outputs, a.config.Targets)
		if err != nil {
			return built{}, fmt.Errorf("failed to build loss: %w", err)
		}
	} else {
		root = a.graph.Sum(outputs...)
		a.graph.SetLabel(root, "out")
	}

	logger.Info("Network built.", "parameters", len(net.Parameters()), "nodes", a.graph.Len())
	return built{root: root, backward: true}, nil
}
