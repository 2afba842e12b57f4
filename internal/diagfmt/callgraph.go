package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"effectful/internal/callgraph"
	"effectful/internal/hir"
	"effectful/internal/symbols"
)

type EdgeOutput struct {
	From string `json:"from" msgpack:"from" yaml:"from"`
	To   string `json:"to" msgpack:"to" yaml:"to"`
}

// CallGraphOutput is the serializable call graph with its callee-first order.
type CallGraphOutput struct {
	Nodes  []IDOutput   `json:"nodes" msgpack:"nodes" yaml:"nodes"`
	Edges  []EdgeOutput `json:"edges" msgpack:"edges" yaml:"edges"`
	Order  []string     `json:"order" msgpack:"order" yaml:"order"`
	Cyclic bool         `json:"cyclic,omitempty" msgpack:"cyclic,omitempty" yaml:"cyclic,omitempty"`
}

func BuildCallGraphOutput(g *callgraph.Graph, m *hir.Module) CallGraphOutput {
	out := CallGraphOutput{}
	for _, id := range g.Nodes() {
		out.Nodes = append(out.Nodes, IDOutput{ID: id.String(), Name: m.Name(id)})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, EdgeOutput{From: e.From.String(), To: e.To.String()})
	}
	topo := g.Toposort()
	for _, id := range topo.Order {
		out.Order = append(out.Order, id.String())
	}
	out.Cyclic = topo.Cyclic
	return out
}

// FormatCallGraph dumps g; names come from m.
func FormatCallGraph(w io.Writer, g *callgraph.Graph, m *hir.Module, f Format) error {
	switch f {
	case FormatJSON:
		return encodeJSON(w, BuildCallGraphOutput(g, m))
	case FormatMsgpack:
		return encodeMsgpack(w, BuildCallGraphOutput(g, m))
	case FormatYAML:
		return encodeYAML(w, BuildCallGraphOutput(g, m))
	}

	var b strings.Builder
	for _, id := range g.Nodes() {
		callees := g.Neighbors(id)
		if len(callees) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s -> %s\n", m.Name(id), joinNames(m, callees))
	}
	topo := g.Toposort()
	fmt.Fprintf(&b, "order: %s\n", joinNames(m, topo.Order))
	if topo.Cyclic {
		fmt.Fprintf(&b, "cycle: %s\n", joinNames(m, topo.Cycles))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func joinNames(m *hir.Module, ids []symbols.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = m.Name(id)
	}
	return strings.Join(names, ", ")
}
