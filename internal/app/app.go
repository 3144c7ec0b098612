package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/neuron/internal/config"
	"github.com/specialistvlad/neuron/internal/graph"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	graph  *graph.Graph
}

// NewApp is the constructor for the main application. Rendered output goes
// to outW and logs to logW. The loader is only used when cfg.GraphPath is
// set.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		graph:  graph.New(),
	}
}

// Graph returns the graph built by Run. This is primarily for testing.
func (a *App) Graph() *graph.Graph {
	return a.graph
}
