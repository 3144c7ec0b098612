package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/specialistvlad/neuron/internal/app"
	"github.com/specialistvlad/neuron/internal/publish"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError builds the ExitError returned for bad arguments.
func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("neuron", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Neuron - A scalar reverse-mode autodiff engine.

Usage:
  neuron [options] [GRAPH_PATH]
  neuron [options] -mlp 3,4,4,1 -inputs 2,3,-1 [-targets 1]

Arguments:
  GRAPH_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph definition file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph definition file or directory (shorthand).")
	formatFlag := flagSet.String("format", app.FormatText, "Output format. Options: 'text', 'json' or 'dot'.")
	logFormatFlag := flagSet.String("log-format", app.LogFormatText, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	mlpFlag := flagSet.String("mlp", "", "Build a network instead of loading a graph: input count and layer sizes, e.g. '3,4,4,1'.")
	inputsFlag := flagSet.String("inputs", "", "Comma-separated network inputs.")
	targetsFlag := flagSet.String("targets", "", "Comma-separated network targets. When set, gradients are taken of the squared error.")
	seedFlag := flagSet.Int64("seed", 1, "Seed for the network's initial weights.")
	publishURLFlag := flagSet.String("publish-url", "", "Socket.io server to publish the graph to. Empty disables publishing.")
	publishNamespaceFlag := flagSet.String("publish-namespace", "", "Socket.io namespace. Defaults to '/'.")
	publishEventFlag := flagSet.String("publish-event", "", "Event the graph is emitted under. Defaults to '"+publish.DefaultEvent+"'.")
	publishAckFlag := flagSet.String("publish-ack", "", "Event to wait for after publishing. Empty means do not wait.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", publish.DefaultTimeout, "Timeout for connecting and for the acknowledgement.")
	publishInsecureFlag := flagSet.Bool("publish-insecure", false, "Skip TLS certificate verification when publishing over wss or https.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *graphFlag != "" {
		path = *graphFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Graph path determined.", "path", path)

	if path == "" && *mlpFlag == "" {
		slog.Debug("Nothing to build, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format := strings.ToLower(*formatFlag)
	switch format {
	case app.FormatText, app.FormatJSON, app.FormatDOT:
	default:
		return nil, false, usageError("invalid format: must be 'text', 'json' or 'dot'")
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != app.LogFormatText && logFormat != app.LogFormatJSON {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	if _, err := app.ParseLogLevel(logLevel); err != nil {
		return nil, false, usageError("invalid log-level: %v", err)
	}

	sizes, err := parseList(*mlpFlag, strconv.Atoi)
	if err != nil {
		return nil, false, usageError("invalid mlp: %v", err)
	}
	inputs, err := parseList(*inputsFlag, parseFloat)
	if err != nil {
		return nil, false, usageError("invalid inputs: %v", err)
	}
	targets, err := parseList(*targetsFlag, parseFloat)
	if err != nil {
		return nil, false, usageError("invalid targets: %v", err)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPath:        path,
		Format:           format,
		MLP:              sizes,
		Inputs:           inputs,
		Targets:          targets,
		Seed:             *seedFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNamespaceFlag,
		PublishEvent:     *publishEventFlag,
		PublishAck:       *publishAckFlag,
		PublishTimeout:   *publishTimeoutFlag,
		PublishInsecure:  *publishInsecureFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseList splits a comma-separated flag value. An empty value is an
// empty list.
func parseList[T any](raw string, parse func(string) (T, error)) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]T, len(parts))
	for i, part := range parts {
		v, err := parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
