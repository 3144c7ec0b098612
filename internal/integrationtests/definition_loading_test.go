package integrationtests

import (
	"testing"

	"github.com/specialistvlad/neuron/internal/app"
	"github.com/specialistvlad/neuron/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestDefinitionLoading_WorkedExampleAcrossFiles(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"graph/inputs.hcl": `
value "a" { data = 2 }
value "b" { data = -3 }
value "c" { data = 10 }
value "f" { data = -2 }
`,
		"graph/model/expr.hcl": `
value "L" { expr = d * f }
value "d" { expr = e + c }
value "e" { expr = a * b }
`,
		"graph/backward.hcl": `backward "L" {}`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertNodeRendered(t, result, "L| op:*, v:-8, g:1")
	testutil.AssertNodeRendered(t, result, "d| op:+, v:4, g:-2")
	testutil.AssertNodeRendered(t, result, "e| op:*, v:-6, g:-2")
	testutil.AssertGradients(t, result, map[string]float64{
		"a": 6, "b": -4, "c": -2, "f": 4, "e": -2, "d": -2, "L": 1,
	})
	require.Contains(t, result.LogOutput, "Discovered HCL files.")
}

func TestDefinitionLoading_SingleFilePath(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"graph/main.hcl":  `value "x" { data = 1 }`,
		"other/extra.hcl": "value \"y\" { data = 5 }\nvalue \"z\" { expr = y * 2 }\nbackward \"z\" {}",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{GraphPath: "other/extra.hcl"})

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertGradients(t, result, map[string]float64{"y": 2, "z": 1})
	require.NotContains(t, result.Output, "x|", "the graph directory was not loaded")
}
