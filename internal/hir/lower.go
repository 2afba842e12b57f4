package hir

import (
	"errors"
	"fmt"
	"slices"

	"effectful/internal/ast"
	"effectful/internal/diag"
	"effectful/internal/effects"
	"effectful/internal/source"
	"effectful/internal/symbols"
)

// ErrUnresolved marks a name with no binding in any enclosing scope.
var ErrUnresolved = errors.New("undefined symbol")

// Options configures lowering. Zero values pick a random allocator and the
// default effect registry.
type Options struct {
	Allocator symbols.Allocator
	Registry  *effects.Registry
}

// Lower transforms a surface module into HIR.
func Lower(m *ast.Module, opts Options) (*Module, error) {
	return LowerWithReporter(m, opts, nil)
}

// LowerWithReporter lowers m and reports every resolution failure to r.
// The first failure is returned as the error and no module is produced.
func LowerWithReporter(m *ast.Module, opts Options, r diag.Reporter) (*Module, error) {
	if m == nil {
		return nil, fmt.Errorf("lower: nil module")
	}
	if opts.Allocator == nil {
		opts.Allocator = symbols.NewRandomAllocator()
	}
	if opts.Registry == nil {
		opts.Registry = effects.Default()
	}

	l := &lowerer{
		opts:     opts,
		reporter: r,
		scopes:   symbols.NewScopes(),
		module:   &Module{Items: make(map[symbols.ID]ModuleItem, len(m.Items))},
	}
	l.lowerModule(m)
	if l.err != nil {
		return nil, l.err
	}
	l.module.IDMap = l.scopes.Names()
	return l.module, nil
}

// lowerer holds context for the lowering pass.
type lowerer struct {
	opts     Options
	reporter diag.Reporter
	scopes   *symbols.Scopes
	module   *Module
	err      error
}

func (l *lowerer) fail(code diag.Code, sp source.Span, err error) {
	if l.err == nil {
		l.err = err
	}
	diag.ReportError(l.reporter, code, sp, err.Error()).Emit()
}

func (l *lowerer) lowerModule(m *ast.Module) {
	l.scopes.Push(symbols.ScopeModule)
	defer l.scopes.Pop()

	names := make([]string, 0, len(m.Items))
	for name := range m.Items {
		names = append(names, name)
	}
	slices.Sort(names)

	// declare every item first so bodies may refer to any of them
	ids := make(map[string]symbols.ID, len(names))
	for _, name := range names {
		id, err := l.scopes.Declare(name, l.opts.Allocator)
		if err != nil {
			l.fail(diag.SemaIDCollision, m.Items[name].NodeSpan(), err)
			return
		}
		ids[name] = id
		if name == ast.MainKey {
			l.module.Main = id
		}
	}

	for _, name := range names {
		if fn, ok := m.Items[name].(*ast.Function); ok {
			if out := l.lowerFunction(ids[name], fn); out != nil {
				l.module.Items[out.ID] = out
			}
		}
	}
}

func (l *lowerer) lowerFunction(id symbols.ID, fn *ast.Function) *Function {
	out := &Function{
		ID:   id,
		Name: fn.Name.Name,
		Span: fn.Span,
		Output: FunctionOutput{
			Type:     l.resolve(fn.Output.Type),
			TypeSpan: fn.Output.Type.Span,
		},
	}

	if fn.Output.Effect != nil {
		out.Output.Effect = l.resolve(*fn.Output.Effect)
		out.Output.EffectSpan = fn.Output.Effect.Span
		if eff, ok := l.opts.Registry.Lookup(out.Output.Effect); ok {
			l.scopes.Push(symbols.ScopeEffect)
			defer l.scopes.Pop()
			for _, op := range eff.Operations {
				if err := l.scopes.Bind(op.Name, op.ID); err != nil {
					l.fail(diag.SemaIDCollision, fn.Output.Effect.Span, err)
					return nil
				}
			}
		}
	}

	l.scopes.Push(symbols.ScopeFunction)
	defer l.scopes.Pop()
	out.Body = l.lowerBlock(&fn.Body)
	return out
}

func (l *lowerer) lowerBlock(b *ast.Block) Block {
	out := Block{Span: b.Span, Statements: make([]Statement, 0, len(b.Statements))}
	for _, st := range b.Statements {
		if es, ok := st.(*ast.ExprStatement); ok {
			out.Statements = append(out.Statements, &ExprStatement{
				Expr: l.lowerExpr(es.Expr),
				Span: es.Span,
			})
		}
	}
	if b.Tail != nil {
		out.Tail = l.lowerExpr(b.Tail)
	}
	return out
}

func (l *lowerer) lowerExpr(e ast.Expr) Expr {
	switch e := e.(type) {
	case *ast.StringLiteral:
		return &StringLiteral{Value: e.Value, Span: e.Span}
	case *ast.FunctionCall:
		call := &FunctionCall{
			Callee:     l.resolve(e.Name),
			CalleeSpan: e.Name.Span,
			Span:       e.Span,
		}
		for _, a := range e.Args {
			call.Args = append(call.Args, l.lowerExpr(a))
		}
		for _, c := range e.Children {
			call.Children = append(call.Children, l.lowerExpr(c))
		}
		return call
	}
	return nil
}

// resolve returns NoID after reporting when name is unbound.
func (l *lowerer) resolve(name ast.Ident) symbols.ID {
	if id, ok := l.scopes.Resolve(name.Name); ok {
		return id
	}
	l.fail(diag.SemaUnresolvedSymbol, name.Span, fmt.Errorf("%w %q", ErrUnresolved, name.Name))
	return symbols.NoID
}
