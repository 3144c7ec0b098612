package testutil

import (
	"testing"

	"github.com/specialistvlad/neuron/internal/app"
	"github.com/specialistvlad/neuron/internal/nodeid"
)

// RunHCLGraphTest runs a single graph definition with text output.
func RunHCLGraphTest(t *testing.T, graphHCL string) *HarnessResult {
	t.Helper()

	files := map[string]string{
		"graph/main.hcl": graphHCL,
	}
	return RunIntegrationTest(t, files, app.Config{})
}

func nodeID(i int) nodeid.ID {
	return nodeid.ID(i)
}
