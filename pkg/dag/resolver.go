// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package dag

import (
	"github.com/gammazero/toposort"

	"swarmforge/internal/orcherr"
)

// Resolver groups a dependency_graph phase's agents into ordered
// parallel-safe batches.
type Resolver struct{}

// NewResolver builds a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve batches agents by dependency level using Kahn's algorithm: a
// batch holds every agent whose dependencies are all satisfied by
// earlier batches. dependencies not present in agents are ignored
// (an agent may depend on something outside the activated set, which
// is treated as already satisfied). A dependency cycle restricted to
// agents is reported as an *orcherr.CycleError.
func (r *Resolver) Resolve(agents []string, dependencies map[string][]string) ([]Batch, error) {
	if len(agents) == 0 {
		return nil, nil
	}

	known := make(map[string]bool, len(agents))
	for _, a := range agents {
		known[a] = true
	}

	if err := checkCycle(agents, dependencies, known); err != nil {
		return nil, err
	}

	graph := make(map[string][]string)
	inDegree := make(map[string]int, len(agents))
	for _, a := range agents {
		inDegree[a] = 0
	}
	for _, a := range agents {
		for _, dep := range dependencies[a] {
			if !known[dep] {
				continue
			}
			graph[dep] = append(graph[dep], a)
			inDegree[a]++
		}
	}

	var queue []string
	for _, a := range agents {
		if inDegree[a] == 0 {
			queue = append(queue, a)
		}
	}

	var batches []Batch
	resolved := 0
	for len(queue) > 0 {
		batch := make(Batch, 0, len(queue))
		var next []string

		for _, name := range queue {
			batch = append(batch, name)
			resolved++

			for _, dependent := range graph[name] {
				inDegree[dependent]--
				if inDegree[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}

		batches = append(batches, batch)
		queue = next
	}

	if resolved != len(agents) {
		return nil, orcherr.NewCycleError("circular dependency detected in agents")
	}

	return batches, nil
}

// checkCycle runs the activated subgraph through toposort.Toposort
// purely as a cycle check: Kahn's algorithm above already detects the
// same condition via its resolved count, but running both catches a
// divergence between the two algorithms rather than silently trusting
// one.
func checkCycle(agents []string, dependencies map[string][]string, known map[string]bool) error {
	var edges []toposort.Edge
	for _, a := range agents {
		for _, dep := range dependencies[a] {
			if known[dep] {
				edges = append(edges, toposort.Edge{dep, a})
			}
		}
	}
	if len(edges) == 0 {
		return nil
	}
	if _, err := toposort.Toposort(edges); err != nil {
		return orcherr.NewCycleError(err.Error())
	}
	return nil
}
