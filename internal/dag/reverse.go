package dag

import "fmt"

// frame is one entry of the explicit depth-first stack.
type frame[K comparable] struct {
	id   K
	next int
}

// ReverseTopological returns every node reachable from root through the
// parents function, ordered so that each node appears only after all of its
// consumers inside the reachable sub-graph. The root comes first.
//
// A node listed twice in another node's parents counts as two consumer
// edges. The walk uses an explicit stack, so deep chains do not grow the Go
// call stack. A cycle is reported as an error wrapping ErrCycle.
func ReverseTopological[K comparable](root K, parents func(K) []K) ([]K, error) {
	cache, err := collect(root, parents)
	if err != nil {
		return nil, err
	}

	// Count consumer edges per node, keeping multiplicity.
	pending := make(map[K]int, len(cache))
	for _, ps := range cache {
		for _, p := range ps {
			pending[p]++
		}
	}

	order := make([]K, 0, len(cache))
	queue := []K{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, p := range cache[id] {
			pending[p]--
			if pending[p] == 0 {
				queue = append(queue, p)
			}
		}
	}

	if len(order) != len(cache) {
		// Unreachable once collect has passed; kept as an invariant check.
		return nil, fmt.Errorf("%w: scheduled %d of %d nodes", ErrCycle, len(order), len(cache))
	}

	return order, nil
}

// collect walks the sub-graph reachable from root, memoizing each node's
// parents and failing on the first back edge.
func collect[K comparable](root K, parents func(K) []K) (map[K][]K, error) {
	cache := make(map[K][]K)
	permanent := make(map[K]bool)
	temporary := map[K]bool{root: true}

	cache[root] = parents(root)
	stack := []frame[K]{{id: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		ps := cache[top.id]

		if top.next == len(ps) {
			delete(temporary, top.id)
			permanent[top.id] = true
			stack = stack[:len(stack)-1]
			continue
		}

		p := ps[top.next]
		top.next++

		if permanent[p] {
			continue
		}
		if temporary[p] {
			return nil, &CycleError[K]{Node: p}
		}

		temporary[p] = true
		if _, ok := cache[p]; !ok {
			cache[p] = parents(p)
		}
		stack = append(stack, frame[K]{id: p})
	}

	return cache, nil
}
