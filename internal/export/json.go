package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes the snapshot as an indented JSON document.
func WriteJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
