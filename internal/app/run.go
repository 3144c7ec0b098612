package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/neuron/internal/ctxlog"
	"github.com/specialistvlad/neuron/internal/export"
	"github.com/specialistvlad/neuron/internal/publish"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var (
		b   built
		err error
	)
	if len(a.config.MLP) > 0 {
		b, err = a.buildMLP(ctx)
	} else {
		b, err = a.buildDefinition(ctx)
	}
	if err != nil {
		return err
	}

	if b.backward {
		a.graph.Backward(b.root)
		a.logger.Info("Backward pass finished.", "root", b.root.String(), "value", a.graph.Value(b.root))
	}

	snap, err := export.Build(a.graph, b.root)
	if err != nil {
		return fmt.Errorf("failed to capture graph: %w", err)
	}

	if err := render(a.outW, a.config.Format, snap); err != nil {
		return err
	}

	if a.config.PublishURL != "" {
		if err := a.publish(ctx, snap); err != nil {
			return fmt.Errorf("failed to publish graph: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// publish sends snap to the configured visualization server.
func (a *App) publish(ctx context.Context, snap export.Snapshot) error {
	p, err := publish.Connect(ctx, publish.Options{
		URL:       a.config.PublishURL,
		Namespace: a.config.PublishNamespace,
		Event:     a.config.PublishEvent,
		AckEvent:  a.config.PublishAck,
		Timeout:   a.config.PublishTimeout,

		InsecureSkipVerify: a.config.PublishInsecure,
	})
	if err != nil {
		return err
	}
	defer p.Close()

	return p.Publish(ctx, snap)
}
