package app

import (
	"fmt"
	"io"

	"github.com/specialistvlad/neuron/internal/export"
)

// render writes snap to w in the given format.
func render(w io.Writer, format string, snap export.Snapshot) error {
	var err error
	switch format {
	case FormatText:
		err = export.WriteText(w, snap)
	case FormatJSON:
		err = export.WriteJSON(w, snap)
	case FormatDOT:
		err = export.WriteDOT(w, snap)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s output: %w", format, err)
	}
	return nil
}
