package integrationtests

import (
	"testing"

	"github.com/specialistvlad/neuron/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestErrorHandling_DefinitionErrors(t *testing.T) {
	testCases := []struct {
		name     string
		graphHCL string
		wantErr  []string
	}{
		{
			name:     "invalid HCL is rejected",
			graphHCL: `value "a" { data = 1`,
			wantErr:  []string{"failed to load graph definition", "failed to parse HCL file"},
		},
		{
			name: "reference cycle",
			graphHCL: `
value "a" { expr = c * 2 }
value "b" { expr = a + 1 }
value "c" { expr = b + 1 }
`,
			wantErr: []string{"failed to compile graph definition", "Dependency cycle"},
		},
		{
			name: "diagnostics carry the source position",
			graphHCL: `
value "a" { data = 1 }
value "b" { expr = a + missing }
`,
			wantErr: []string{"main.hcl:3,", "Reference to undeclared value", `"missing"`},
		},
		{
			name:     "unknown backward target",
			graphHCL: "value \"a\" { data = 1 }\nbackward \"z\" {}",
			wantErr:  []string{"Unknown backward target"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			result := testutil.RunHCLGraphTest(t, tc.graphHCL)

			// --- Assert ---
			require.Error(t, result.Err)
			for _, want := range tc.wantErr {
				require.ErrorContains(t, result.Err, want)
			}
			require.Empty(t, result.Output, "nothing is rendered after a failed build")
		})
	}
}
