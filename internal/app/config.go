package app

import (
	"errors"
	"fmt"
	"time"
)

// Output formats understood by Run.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // hcl files
	Format    string

	// MLP describes a network instead of a definition file: the input count
	// followed by each layer's size, e.g. [3 4 4 1].
	MLP     []int
	Inputs  []float64
	Targets []float64
	Seed    int64

	LogFormat string
	LogLevel  string

	PublishURL       string
	PublishNamespace string
	PublishEvent     string
	PublishAck       string
	PublishTimeout   time.Duration
	// PublishInsecure skips TLS certificate verification for wss/https URLs.
	PublishInsecure bool
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	hasMLP := len(cfg.MLP) > 0
	switch {
	case cfg.GraphPath == "" && !hasMLP:
		return nil, errors.New("either GraphPath or MLP must be set")
	case cfg.GraphPath != "" && hasMLP:
		return nil, errors.New("GraphPath and MLP cannot be used together")
	}

	if hasMLP {
		if len(cfg.MLP) < 2 {
			return nil, errors.New("MLP needs an input count and at least one layer size")
		}
		for i, n := range cfg.MLP {
			if n <= 0 {
				return nil, fmt.Errorf("MLP size at position %d must be positive, got %d", i, n)
			}
		}
		if len(cfg.Inputs) != cfg.MLP[0] {
			return nil, fmt.Errorf("MLP expects %d inputs, got %d", cfg.MLP[0], len(cfg.Inputs))
		}
		if outputs := cfg.MLP[len(cfg.MLP)-1]; len(cfg.Targets) > 0 && len(cfg.Targets) != outputs {
			return nil, fmt.Errorf("MLP has %d outputs, got %d targets", outputs, len(cfg.Targets))
		}
	} else if len(cfg.Inputs) > 0 || len(cfg.Targets) > 0 {
		return nil, errors.New("Inputs and Targets require MLP")
	}

	switch cfg.Format {
	case "":
		cfg.Format = FormatText
	case FormatText, FormatJSON, FormatDOT:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	if cfg.PublishURL == "" && (cfg.PublishAck != "" || cfg.PublishNamespace != "" || cfg.PublishEvent != "" || cfg.PublishInsecure) {
		return nil, errors.New("publish options require PublishURL")
	}

	return &cfg, nil
}
