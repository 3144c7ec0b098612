// internal/nodeid/id.go
package nodeid

import "strconv"

// prefix starts every rendered identifier.
const prefix = "n"

// String serializes the ID into its canonical form, e.g. `n12`.
// The invalid ID renders as an empty string.
func (id ID) String() string {
	if !id.Valid() {
		return ""
	}
	return prefix + strconv.Itoa(int(id))
}
