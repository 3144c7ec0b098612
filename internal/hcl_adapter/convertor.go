package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// numberFromCty converts a statically evaluated value into a float64. Any
// value that converts to a cty.Number is accepted, so `"2.5"` works as well
// as `2.5`.
func numberFromCty(val cty.Value, subject *hcl.Range) (float64, hcl.Diagnostics) {
	if !val.IsKnown() || val.IsNull() {
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   "A value must be a known, non-null number.",
			Subject:  subject,
		}}
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Incorrect value type",
			Detail:   fmt.Sprintf("A number is required, got %s.", val.Type().FriendlyName()),
			Subject:  subject,
		}}
	}

	var f float64
	if err := gocty.FromCtyValue(num, &f); err != nil {
		return 0, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid number",
			Detail:   fmt.Sprintf("The number cannot be represented as a float64: %s.", err),
			Subject:  subject,
		}}
	}
	return f, nil
}
