package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodes: make(map[K]*node[K]),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph[K]) AddNode(id K) {
	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node[K]{id: id}
	g.order = append(g.order, id)
}

// Has reports whether a node with the given ID exists.
func (g *Graph[K]) Has(id K) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes in the graph.
func (g *Graph[K]) Len() int {
	return len(g.order)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
// Adding an existing edge again is a no-op.
func (g *Graph[K]) AddEdge(fromID, toID K) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %v -> %v", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %v", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %v", toID)
	}

	if toNode.hasDep(fromID) {
		return nil
	}
	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)

	return nil
}

// DetectCycles checks the graph for any cycles. The returned error is a
// *CycleError naming a node on the first cycle found.
func (g *Graph[K]) DetectCycles() error {
	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[K]bool)
	temporary := make(map[K]bool)

	var visit func(n *node[K]) error
	visit = func(n *node[K]) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return &CycleError[K]{Node: n.id}
		}

		temporary[n.id] = true

		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}

		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

// Sort returns every node ordered so that each node comes after all of its
// dependencies. Ties are broken by insertion order, so the result is
// deterministic for a given sequence of AddNode and AddEdge calls.
func (g *Graph[K]) Sort() ([]K, error) {
	sorted := make([]K, 0, len(g.order))
	permanent := make(map[K]bool, len(g.order))
	temporary := make(map[K]bool)

	var visit func(n *node[K]) error
	visit = func(n *node[K]) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return &CycleError[K]{Node: n.id}
		}

		temporary[n.id] = true
		for _, dep := range n.deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		sorted = append(sorted, n.id)

		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return nil, err
		}
	}

	return sorted, nil
}
