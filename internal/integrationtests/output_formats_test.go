package integrationtests

import (
	"encoding/json"
	"testing"

	"github.com/specialistvlad/neuron/internal/app"
	"github.com/specialistvlad/neuron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormats_NaNSurvivesJSON(t *testing.T) {
	// --- Arrange ---
	// A negative base with a fractional exponent is NaN, not an error.
	files := map[string]string{
		"graph/main.hcl": `
value "x" { data = -8 }
value "y" { expr = pow(x, 0.5) }
backward "y" {}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{Format: app.FormatJSON})

	// --- Assert ---
	require.NoError(t, result.Err)

	var doc struct {
		Nodes []map[string]any `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Output), &doc))

	values := make(map[string]any)
	grads := make(map[string]any)
	for _, n := range doc.Nodes {
		label, _ := n["label"].(string)
		values[label] = n["value"]
		grads[label] = n["gradient"]
	}
	assert.Equal(t, "NaN", values["y"])
	assert.Equal(t, "NaN", grads["x"])
	assert.Equal(t, 1.0, grads["y"])
}

func TestOutputFormats_DOT(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"graph/main.hcl": `
value "a" { data = 3 }
value "b" { expr = a * a }
backward "b" {}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{Format: app.FormatDOT})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "digraph neuron {")
	assert.Contains(t, result.Output, "b| op:*, v:9, g:1")
	assert.Contains(t, result.Output, "a| op:, v:3, g:6")
}
