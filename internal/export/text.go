package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/neuron/internal/nodeid"
)

// WriteText writes one line per node:
//
//	n4  L| op:*, v:-8, g:1  <- n2 n3
func WriteText(w io.Writer, s Snapshot) error {
	parents := s.parentsOf()

	for _, n := range s.Nodes {
		line := fmt.Sprintf("%-4s %s", n.ID, n.Display)
		if ps := parents[n.ID]; len(ps) > 0 {
			line += "  <- " + joinIDs(ps)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write node %s: %w", n.ID, err)
		}
	}
	return nil
}

func joinIDs(ids []nodeid.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, " ")
}
