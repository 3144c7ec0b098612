package integrationtests

import (
	"math"
	"strings"
	"testing"

	"github.com/specialistvlad/neuron/internal/app"
	"github.com/specialistvlad/neuron/internal/nodeid"
	"github.com/specialistvlad/neuron/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetwork_LossGradientsAreFinite(t *testing.T) {
	// --- Arrange ---
	cfg := app.Config{
		MLP:     []int{3, 4, 4, 1},
		Inputs:  []float64{2, 3, -1},
		Targets: []float64{1},
		Seed:    3,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, nil, cfg)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.LogOutput, "Network built.")

	g := result.App.Graph()
	weights := 0
	for i := 0; i < g.Len(); i++ {
		n := g.Node(nodeid.ID(i))
		assert.False(t, math.IsNaN(n.Grad), "node %d has a NaN gradient", i)
		if n.IsLeaf() && strings.HasPrefix(n.Label, "w") {
			weights++
		}
	}
	// 3*4 + 4*4 + 4*1 weights.
	assert.Equal(t, 32, weights)
}
