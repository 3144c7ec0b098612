package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/neuron/internal/hcl_adapter"
	"github.com/specialistvlad/neuron/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workedExample = `
value "a" { data = 2 }
value "b" { data = -3 }
value "c" { data = 10 }
value "f" { data = -2 }
value "e" { expr = a * b }
value "d" { expr = e + c }
value "L" { expr = d * f }
backward "L" {}
`

// runApp writes src to a temporary definition file when cfg has no MLP and
// runs the app, returning rendered output and logs.
func runApp(t *testing.T, src string, cfg Config) (string, string, *App, error) {
	t.Helper()

	if len(cfg.MLP) == 0 {
		path := filepath.Join(t.TempDir(), "main.hcl")
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))
		cfg.GraphPath = path
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	a := NewApp(out, logs, appConfig, hcl_adapter.NewLoader())
	err = a.Run(context.Background())
	return out.String(), logs.String(), a, err
}

func TestRun_Definition(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, logs, _, err := runApp(t, workedExample, Config{})
		require.NoError(t, err)

		assert.Contains(t, out, "a| op:, v:2, g:6")
		assert.Contains(t, out, "b| op:, v:-3, g:-4")
		assert.Contains(t, out, "e| op:*, v:-6, g:-2")
		assert.Contains(t, out, "d| op:+, v:4, g:-2")
		assert.Contains(t, out, "L| op:*, v:-8, g:1")
		assert.Contains(t, logs, "Backward pass finished.")
		assert.Regexp(t, `msg="Value compiled\." graph_path=\S+main\.hcl value=`, logs, "loader and compiler logs carry the graph path")
	})

	t.Run("json", func(t *testing.T) {
		out, _, _, err := runApp(t, workedExample, Config{Format: FormatJSON})
		require.NoError(t, err)

		var doc struct {
			Root  string `json:"root"`
			Nodes []struct {
				ID       string  `json:"id"`
				Label    string  `json:"label"`
				Gradient float64 `json:"gradient"`
			} `json:"nodes"`
			Edges []json.RawMessage `json:"edges"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "n6", doc.Root)
		assert.Len(t, doc.Nodes, 7)
		assert.Len(t, doc.Edges, 6)

		grads := make(map[string]float64)
		for _, n := range doc.Nodes {
			grads[n.Label] = n.Gradient
		}
		assert.Equal(t, map[string]float64{"a": 6, "b": -4, "c": -2, "f": 4, "e": -2, "d": -2, "L": 1}, grads)
	})

	t.Run("dot", func(t *testing.T) {
		out, _, _, err := runApp(t, workedExample, Config{Format: FormatDOT})
		require.NoError(t, err)
		assert.Contains(t, out, "digraph neuron {")
		assert.Contains(t, out, "L| op:*, v:-8, g:1")
	})

	t.Run("without backward block", func(t *testing.T) {
		out, logs, a, err := runApp(t, `
value "x" { data = 3 }
value "y" { expr = x * x }
`, Config{})
		require.NoError(t, err)
		assert.Contains(t, logs, "No backward block found")
		assert.Contains(t, out, "y| op:*, v:9, g:0")
		assert.Equal(t, 0.0, a.Graph().Gradient(0))
	})

	t.Run("load error", func(t *testing.T) {
		_, _, _, err := runApp(t, `value "x" {}`, Config{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to load graph definition")
		assert.ErrorContains(t, err, "Missing value definition")
	})

	t.Run("compile error", func(t *testing.T) {
		_, _, _, err := runApp(t, `value "x" { expr = y }`, Config{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "Reference to undeclared value")
	})
}

func TestRun_MLP(t *testing.T) {
	t.Run("loss", func(t *testing.T) {
		cfg := Config{MLP: []int{3, 4, 4, 1}, Inputs: []float64{2, 3, -1}, Targets: []float64{1}, Seed: 7}
		out, _, a, err := runApp(t, "", cfg)
		require.NoError(t, err)
		assert.Contains(t, out, "loss| op:*", "a single squared term is the loss itself")

		root := a.Graph().Len() - 1
		assert.Equal(t, "loss", a.Graph().Label(nodeid.ID(root)))
		assert.Equal(t, 1.0, a.Graph().Gradient(nodeid.ID(root)))
	})

	t.Run("seed makes runs repeatable", func(t *testing.T) {
		cfg := Config{MLP: []int{2, 3, 2}, Inputs: []float64{0.5, -1.5}, Seed: 42}
		first, _, _, err := runApp(t, "", cfg)
		require.NoError(t, err)
		second, _, _, err := runApp(t, "", cfg)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Contains(t, first, "out| op:+")
	})
}

func TestRun_PublishFailure(t *testing.T) {
	out, _, _, err := runApp(t, workedExample, Config{PublishURL: "localhost:3000"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to publish graph")
	assert.Contains(t, out, "L| op:*, v:-8, g:1", "output is rendered before publishing")
}
