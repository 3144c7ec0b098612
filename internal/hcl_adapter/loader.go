package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/neuron/internal/config"
	"github.com/specialistvlad/neuron/internal/ctxlog"
	"github.com/specialistvlad/neuron/internal/fsutil"
	"github.com/specialistvlad/neuron/internal/hclutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// rootSchema lists every top-level block a definition file may contain.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "value", LabelNames: []string{"name"}},
		{Type: "backward", LabelNames: []string{"target"}},
	},
}

// valueBodySchema is the schema for the body of a `value` block. Exactly
// one of the two attributes must be present; that rule is checked after
// decoding so the error can name both.
var valueBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "data"},
		{Name: "expr"},
	},
}

// backwardBodySchema is empty: a `backward` block only carries its label.
var backwardBodySchema = &hcl.BodySchema{}

// Load reads every .hcl file reachable from paths and merges their blocks
// into a single model. Value names must be unique across all files and at
// most one `backward` block may exist.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Compiler, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	var backwardBlocks hcl.Blocks
	var diags hcl.Diagnostics

	for _, file := range files {
		hclFile, parseDiags := parser.ParseHCLFile(file)
		if parseDiags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, parseDiags)
		}

		content, contentDiags := hclFile.Body.Content(rootSchema)
		diags = append(diags, contentDiags...)
		if content == nil {
			continue
		}

		for _, block := range content.Blocks {
			switch block.Type {
			case "value":
				v, valueDiags := decodeValue(block)
				diags = append(diags, valueDiags...)
				if v == nil {
					continue
				}
				if prev, added := model.Add(v); !added {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Duplicate value",
						Detail:   fmt.Sprintf("A value named %q was already declared at %s.", v.Name, prev.DeclRange),
						Subject:  v.DeclRange.Ptr(),
					})
				}
			case "backward":
				backwardBlocks = append(backwardBlocks, block)
			}
		}
	}

	backward, uniqueDiags := hclutil.FindUniqueBlock(backwardBlocks, "backward")
	diags = append(diags, uniqueDiags...)
	if backward != nil {
		_, bodyDiags := backward.Body.Content(backwardBodySchema)
		diags = append(diags, bodyDiags...)
		model.Backward = &config.Backward{
			Target:    backward.Labels[0],
			DeclRange: backward.DefRange,
		}
	}

	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to decode graph definition: %w", diags)
	}

	logger.Debug("HCL loading complete.", "values", len(model.Values), "has_backward", model.Backward != nil)
	return model, NewCompiler(), nil
}

// decodeValue turns a `value` block into a config.Value. It returns nil
// when the block is unusable.
func decodeValue(block *hcl.Block) (*config.Value, hcl.Diagnostics) {
	v := &config.Value{
		Name:      block.Labels[0],
		DeclRange: block.DefRange,
	}

	if !hclsyntax.ValidIdentifier(v.Name) {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value name",
			Detail:   fmt.Sprintf("%q cannot be referenced from expressions. Names must be valid identifiers.", v.Name),
			Subject:  block.LabelRanges[0].Ptr(),
		}}
	}

	content, diags := block.Body.Content(valueBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	dataAttr, hasData := content.Attributes["data"]
	exprAttr, hasExpr := content.Attributes["expr"]

	switch {
	case hasData && hasExpr:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Conflicting value definition",
			Detail:   fmt.Sprintf("Value %q sets both \"data\" and \"expr\". Use exactly one.", v.Name),
			Subject:  exprAttr.Range.Ptr(),
		})
		return nil, diags
	case !hasData && !hasExpr:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing value definition",
			Detail:   fmt.Sprintf("Value %q must set either \"data\" or \"expr\".", v.Name),
			Subject:  v.DeclRange.Ptr(),
		})
		return nil, diags
	case hasData:
		var data float64
		decodeDiags := gohcl.DecodeExpression(dataAttr.Expr, nil, &data)
		diags = append(diags, decodeDiags...)
		if decodeDiags.HasErrors() {
			return nil, diags
		}
		v.Data = &data
	default:
		v.Expr = exprAttr.Expr
	}

	return v, diags
}
