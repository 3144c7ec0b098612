package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertNodeRendered checks that the text output of a run contains a node
// with the given display form, e.g. "L| op:*, v:-8, g:1".
func AssertNodeRendered(t *testing.T, result *HarnessResult, display string) {
	t.Helper()

	require.True(t,
		strings.Contains(result.Output, " "+display),
		"expected node %q in output:\n%s", display, result.Output,
	)
}

// AssertGradients checks the gradient of every named value of a text run.
func AssertGradients(t *testing.T, result *HarnessResult, want map[string]float64) {
	t.Helper()

	g := result.App.Graph()
	got := make(map[string]float64, len(want))
	for i := 0; i < g.Len(); i++ {
		n := g.Node(nodeID(i))
		if _, ok := want[n.Label]; ok {
			got[n.Label] = n.Grad
		}
	}
	require.Equal(t, want, got)
}
