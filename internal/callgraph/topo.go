package callgraph

import (
	"slices"

	"effectful/internal/symbols"
)

type Topo struct {
	Order   []symbols.ID   // callees before callers
	Batches [][]symbols.ID // волны узлов, чьи callee уже обработаны
	Cyclic  bool
	Cycles  []symbols.ID // узлы, оставшиеся в цикле
}

// Toposort runs Kahn's algorithm on the reversed graph so every callee
// precedes its callers. Self-calls count as cycles.
func (g *Graph) Toposort() *Topo {
	outdeg := make(map[symbols.ID]int, len(g.edges))
	callers := make(map[symbols.ID][]symbols.ID, len(g.edges))
	for _, e := range g.Edges() {
		outdeg[e.From]++
		callers[e.To] = append(callers[e.To], e.From)
	}

	topo := &Topo{Order: make([]symbols.ID, 0, len(g.edges))}
	var current []symbols.ID
	for _, id := range g.Nodes() {
		if outdeg[id] == 0 {
			current = append(current, id)
		}
	}

	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)

		var next []symbols.ID
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, from := range callers[id] {
				outdeg[from]--
				if outdeg[from] == 0 {
					next = append(next, from)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != len(g.edges) {
		topo.Cyclic = true
		for _, id := range g.Nodes() {
			if outdeg[id] > 0 {
				topo.Cycles = append(topo.Cycles, id)
			}
		}
	}
	return topo
}
