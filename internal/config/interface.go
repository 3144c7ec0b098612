package config

import (
	"context"

	"github.com/specialistvlad/neuron/internal/graph"
)

// Loader is the interface for a format-specific definition loader.
type Loader interface {
	// Load reads definitions from the given paths, translates them into the
	// format-agnostic model, and returns a matching Compiler.
	Load(ctx context.Context, paths ...string) (*Model, Compiler, error)
}

// Compiler lowers a model onto a graph. It is format-specific because value
// expressions keep their source syntax until this point.
type Compiler interface {
	// Compile appends one node per value to g, in dependency order, and
	// resolves the backward target.
	Compile(ctx context.Context, m *Model, g *graph.Graph) (*Program, error)
}
