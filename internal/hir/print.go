package hir

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"effectful/internal/symbols"
)

// DumpOptions configures HIR dumping.
type DumpOptions struct {
	// ShowIDs appends #<id> to every name.
	ShowIDs bool
}

// Printer is used to dump HIR to text format.
type Printer struct {
	w      io.Writer
	m      *Module
	indent int
	opts   DumpOptions
	err    error
}

// NewPrinter creates a new HIR printer.
func NewPrinter(w io.Writer, m *Module, opts DumpOptions) *Printer {
	return &Printer{w: w, m: m, opts: opts}
}

// Dump writes the HIR module to the writer.
func Dump(w io.Writer, m *Module, opts DumpOptions) error {
	return NewPrinter(w, m, opts).PrintModule()
}

// PrintModule prints items in identity order so output is stable for a
// deterministic allocator.
func (p *Printer) PrintModule() error {
	ids := make([]symbols.ID, 0, len(p.m.Items))
	for id := range p.m.Items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := p.m.Items[id].(*Function); ok {
			p.printFunction(fn)
		}
	}
	return p.err
}

func (p *Printer) printFunction(fn *Function) {
	p.printf("fn %s -> %s", p.name(fn.ID), p.name(fn.Output.Type))
	if fn.HasEffect() {
		p.printf(" eff %s", p.name(fn.Output.Effect))
	}
	p.printf("\n")
	p.indent++
	for _, st := range fn.Body.Statements {
		if es, ok := st.(*ExprStatement); ok {
			p.printIndent()
			p.printf("stmt ")
			p.printExpr(es.Expr)
			p.printf("\n")
		}
	}
	if fn.Body.Tail != nil {
		p.printIndent()
		p.printf("tail ")
		p.printExpr(fn.Body.Tail)
		p.printf("\n")
	}
	p.indent--
}

func (p *Printer) printExpr(e Expr) {
	switch e := e.(type) {
	case *StringLiteral:
		p.printf("%q", e.Value)
	case *FunctionCall:
		p.printf("%s", p.name(e.Callee))
		if len(e.Args) > 0 {
			p.printf("(")
			p.printList(e.Args)
			p.printf(")")
		}
		if len(e.Children) > 0 {
			p.printf(" { ")
			p.printList(e.Children)
			p.printf(" }")
		}
	default:
		p.printf("<nil>")
	}
}

func (p *Printer) printList(list []Expr) {
	for i, e := range list {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(e)
	}
}

func (p *Printer) name(id symbols.ID) string {
	if p.opts.ShowIDs {
		return p.m.Name(id) + "#" + id.String()
	}
	return p.m.Name(id)
}

func (p *Printer) printIndent() {
	p.printf("%s", strings.Repeat("  ", p.indent))
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
