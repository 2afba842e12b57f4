// Package callgraph builds the "caller invokes callee" graph over HIR
// identities. Adjacency is keyed by node identity, so repeated calls and
// self-calls collapse into a single edge.
package callgraph

import (
	"slices"

	"effectful/internal/hir"
	"effectful/internal/symbols"
)

type Graph struct {
	edges map[symbols.ID]map[symbols.ID]struct{} // edges[from] = set(to)
}

// Edge is a directed caller→callee pair.
type Edge struct {
	From symbols.ID
	To   symbols.ID
}

func New() *Graph {
	return &Graph{edges: make(map[symbols.ID]map[symbols.ID]struct{})}
}

// AddNode registers id; adding an existing node is a no-op.
func (g *Graph) AddNode(id symbols.ID) {
	if _, ok := g.edges[id]; !ok {
		g.edges[id] = make(map[symbols.ID]struct{})
	}
}

// AddEdge adds from→to, creating both nodes on demand.
func (g *Graph) AddEdge(from, to symbols.ID) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges[from][to] = struct{}{}
}

func (g *Graph) HasNode(id symbols.ID) bool {
	_, ok := g.edges[id]
	return ok
}

func (g *Graph) HasEdge(from, to symbols.ID) bool {
	_, ok := g.edges[from][to]
	return ok
}

// Neighbors returns the callees of id in ascending identity order.
func (g *Graph) Neighbors(id symbols.ID) []symbols.ID {
	out := make([]symbols.ID, 0, len(g.edges[id]))
	for to := range g.edges[id] {
		out = append(out, to)
	}
	slices.Sort(out)
	return out
}

// Nodes returns every node in ascending identity order.
func (g *Graph) Nodes() []symbols.ID {
	out := make([]symbols.ID, 0, len(g.edges))
	for id := range g.edges {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Edges returns every edge ordered by From, then To.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, from := range g.Nodes() {
		for _, to := range g.Neighbors(from) {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// Build adds a node per module function and an edge to every callee found
// in its statements and tail, at any nesting depth.
func Build(m *hir.Module) *Graph {
	g := New()
	for id, item := range m.Items {
		g.AddNode(id)
		fn, ok := item.(*hir.Function)
		if !ok {
			continue
		}
		hir.WalkBlockCalls(&fn.Body, func(c *hir.FunctionCall) {
			g.AddEdge(id, c.Callee)
		})
	}
	return g
}
