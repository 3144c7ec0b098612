package dag

import (
	"errors"
	"fmt"
)

// ErrCycle is matched by every error that reports a cycle.
var ErrCycle = errors.New("cycle detected")

// CycleError reports a node that lies on a cycle.
type CycleError[K comparable] struct {
	Node K
}

func (e *CycleError[K]) Error() string {
	return fmt.Sprintf("%v involving node '%v'", ErrCycle, e.Node)
}

// Is makes errors.Is(err, ErrCycle) hold.
func (e *CycleError[K]) Is(target error) bool {
	return target == ErrCycle
}

// Graph is a collection of nodes and their dependencies, representing a DAG.
// It is built and read by one goroutine; callers sharing a Graph must
// synchronize themselves.
type Graph[K comparable] struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[K]*node[K]
	// order keeps node IDs in insertion order so traversals are deterministic.
	order []K
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using IDs),
// not by direct struct manipulation.
type node[K comparable] struct {
	// id is the unique identifier for the node.
	id K
	// deps holds the nodes that this node depends on (predecessors), in
	// the order the edges were added.
	deps []*node[K]
	// dependents holds the nodes that depend on this node (successors),
	// walked by DetectCycles.
	dependents []*node[K]
}

// hasDep reports whether an edge from dep to n already exists.
func (n *node[K]) hasDep(dep K) bool {
	for _, d := range n.deps {
		if d.id == dep {
			return true
		}
	}
	return false
}
