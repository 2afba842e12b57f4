package callgraph_test

import (
	"slices"
	"testing"

	"effectful/internal/callgraph"
	"effectful/internal/hir"
	"effectful/internal/parser"
	"effectful/internal/symbols"
)

func lower(t *testing.T, src string) *hir.Module {
	t.Helper()
	mod, bag := parser.Parse(src)
	if mod == nil {
		t.Fatalf("parse: %+v", bag.Items())
	}
	m, err := hir.Lower(mod, hir.Options{})
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	return m
}

func sorted(ids ...symbols.ID) []symbols.ID {
	slices.Sort(ids)
	return ids
}

func TestNeighborsHelloWorld(t *testing.T) {
	m := lower(t, `fn main() -> Html { Html { Body { Paragraph("Hello, world!") } } }`)
	g := callgraph.Build(m)
	got := g.Neighbors(m.Main)
	want := sorted(symbols.HTML, symbols.Body, symbols.Paragraph)
	if !slices.Equal(got, want) {
		t.Fatalf("Neighbors(main) = %v, want %v", got, want)
	}
	if len(g.Nodes()) != 4 {
		t.Fatalf("want main plus three callees, got %v", g.Nodes())
	}
}

func TestDuplicateCallsCollapse(t *testing.T) {
	m := lower(t, `fn main() -> Html eff Console {
		log("a");
		log("b");
		Html { Body { Paragraph("x"), Paragraph("y") }, Body }
	}`)
	g := callgraph.Build(m)
	if n := len(g.Neighbors(m.Main)); n != 4 {
		t.Fatalf("want 4 distinct callees (log, Html, Body, Paragraph), got %d", n)
	}
	if len(g.Edges()) != 4 {
		t.Fatalf("edges must collapse: %v", g.Edges())
	}
}

func TestSelfLoopCollapsesAndIsCyclic(t *testing.T) {
	m := lower(t, `fn main() -> Html { main { main } }`)
	g := callgraph.Build(m)
	if !g.HasEdge(m.Main, m.Main) || len(g.Edges()) != 1 {
		t.Fatalf("expected one self edge, got %v", g.Edges())
	}
	topo := g.Toposort()
	if !topo.Cyclic || !slices.Equal(topo.Cycles, []symbols.ID{m.Main}) {
		t.Fatalf("self call must be reported as a cycle: %+v", topo)
	}
}

func TestToposortCalleesFirst(t *testing.T) {
	g := callgraph.New()
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	g.AddNode(4)
	topo := g.Toposort()
	if topo.Cyclic {
		t.Fatalf("graph is acyclic")
	}
	if want := []symbols.ID{3, 4, 2, 1}; !slices.Equal(topo.Order, want) {
		t.Fatalf("order = %v, want %v", topo.Order, want)
	}
	if len(topo.Batches) != 3 || !slices.Equal(topo.Batches[0], []symbols.ID{3, 4}) {
		t.Fatalf("batches = %v", topo.Batches)
	}
}
