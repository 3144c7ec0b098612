// internal/nodeid/types.go
package nodeid

// ID is the identity of a node inside a graph arena. It is the node's index
// in the arena, so two nodes with equal values still have distinct IDs.
type ID int

// Invalid is returned where no node applies, e.g. a missing backward target.
const Invalid ID = -1

// Valid reports whether the ID can address an arena slot.
func (id ID) Valid() bool {
	return id >= 0
}

// Int64 returns the ID widened for APIs keyed by int64, such as gonum graphs.
func (id ID) Int64() int64 {
	return int64(id)
}
