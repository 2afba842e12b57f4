// Package codegen turns a lowered module into a markup tree. The tail of
// main becomes the document; when main declares an effect its statements
// become a generator script that the trampoline drives at runtime.
package codegen

import (
	"fmt"

	"effectful/internal/ast"
	"effectful/internal/diag"
	"effectful/internal/effects"
	"effectful/internal/hir"
	"effectful/internal/markup"
	"effectful/internal/source"
	"effectful/internal/symbols"
)

// Options configures generation. A nil Registry means effects.Default();
// Reporter, when set, receives warnings. Allocator is only used by
// GenerateSurface.
type Options struct {
	Registry  *effects.Registry
	Reporter  diag.Reporter
	Allocator symbols.Allocator
}

// Generate lowers m. The returned error is a *Error for every problem in
// the program itself.
func Generate(m *hir.Module, opts Options) (*markup.Element, error) {
	if opts.Registry == nil {
		opts.Registry = effects.Default()
	}
	g := &generator{opts: opts, module: m}
	return g.run()
}

// GenerateSurface lowers a parsed module to HIR and generates it.
func GenerateSurface(m *ast.Module, opts Options) (*markup.Element, error) {
	h, err := hir.LowerWithReporter(m, hir.Options{Allocator: opts.Allocator, Registry: opts.Registry}, opts.Reporter)
	if err != nil {
		return nil, fmt.Errorf("lower: %w", err)
	}
	return Generate(h, opts)
}

type generator struct {
	opts   Options
	module *hir.Module
}

func (g *generator) run() (*markup.Element, error) {
	fn := g.module.MainFunction()
	if fn == nil {
		return nil, errorf(diag.GenMissingMain, spanOfModule(g.module), "missing main function")
	}
	if fn.Output.Type != symbols.HTML {
		return nil, errorf(diag.GenBadReturnType, fn.Output.TypeSpan,
			"main must return Html, found %s", g.module.Name(fn.Output.Type))
	}

	var eff *effects.Effect
	if fn.HasEffect() {
		found, ok := g.opts.Registry.Lookup(fn.Output.Effect)
		if !ok {
			return nil, errorf(diag.GenUnknownEffect, fn.Output.EffectSpan,
				"%s is not an effect", g.module.Name(fn.Output.Effect))
		}
		eff = found
	}

	if fn.Body.Tail == nil {
		return nil, errorf(diag.GenMissingTail, fn.Body.Span, "main has no return value")
	}
	child, err := g.lowerMarkup(fn.Body.Tail)
	if err != nil {
		return nil, err
	}
	root, ok := child.(*markup.Element)
	if !ok {
		return nil, errorf(diag.GenTailNotMarkup, fn.Body.Tail.ExprSpan(), "main must return markup")
	}

	if eff == nil {
		g.warnUnused(fn)
		return root, nil
	}
	if err := g.attachScripts(root, fn, eff); err != nil {
		return nil, err
	}
	return root, nil
}

func (g *generator) warnUnused(fn *hir.Function) {
	for _, st := range fn.Body.Statements {
		diag.ReportWarning(g.opts.Reporter, diag.GenUnusedStatement, st.StmtSpan(),
			"statement has no effect; declare an effect to run it").
			WithNote(fn.Span, "main declares no effect").
			Emit()
	}
}

// spanOfModule picks any item span so a missing main still points into the file.
func spanOfModule(m *hir.Module) (sp source.Span) {
	for _, it := range m.Items {
		if fn, ok := it.(*hir.Function); ok {
			return fn.Span
		}
	}
	return sp
}
