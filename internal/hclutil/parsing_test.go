package hclutil

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBlocks(t *testing.T, src string) hcl.Blocks {
	t.Helper()
	file, diags := hclsyntax.ParseConfig([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())

	content, _, diags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "backward", LabelNames: []string{"target"}},
			{Type: "value", LabelNames: []string{"name"}},
		},
	})
	require.False(t, diags.HasErrors(), diags.Error())
	return content.Blocks
}

func TestFindUniqueBlock(t *testing.T) {
	t.Run("single block", func(t *testing.T) {
		blocks := parseBlocks(t, `
value "a" {}
backward "a" {}
`)
		block, diags := FindUniqueBlock(blocks, "backward")
		require.False(t, diags.HasErrors())
		require.NotNil(t, block)
		assert.Equal(t, []string{"a"}, block.Labels)
	})

	t.Run("no block", func(t *testing.T) {
		block, diags := FindUniqueBlock(parseBlocks(t, `value "a" {}`), "backward")
		assert.Nil(t, block)
		assert.Empty(t, diags)
	})

	t.Run("duplicates are reported", func(t *testing.T) {
		blocks := parseBlocks(t, `
backward "a" {}
backward "b" {}
backward "c" {}
`)
		block, diags := FindUniqueBlock(blocks, "backward")
		require.NotNil(t, block)
		assert.Equal(t, []string{"a"}, block.Labels, "the first block wins")
		require.Len(t, diags, 2)
		assert.Equal(t, `Duplicate "backward" block`, diags[0].Summary)
		assert.Equal(t, 3, diags[0].Subject.Start.Line)
	})
}

func TestTraversalKey(t *testing.T) {
	expr, diags := hclsyntax.ParseExpression([]byte(`a.b[0]`), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors())

	vars := expr.Variables()
	require.Len(t, vars, 1)
	assert.Equal(t, "a.b[0]", TraversalKey(vars[0]))
}
