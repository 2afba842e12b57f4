package codegen

import (
	"effectful/internal/diag"
	"effectful/internal/ecma"
	"effectful/internal/effects"
	"effectful/internal/hir"
	"effectful/internal/machination"
	"effectful/internal/markup"
)

// attachScripts appends the generator and the trampoline to the first body.
func (g *generator) attachScripts(root *markup.Element, fn *hir.Function, eff *effects.Effect) error {
	body := root.Find(markup.BodyTag)
	if body == nil {
		return errorf(diag.GenMissingBody, fn.Body.Tail.ExprSpan(), "effectful main needs a Body to hold its scripts")
	}

	yields := make([]ecma.Stmt, 0, len(fn.Body.Statements))
	for _, st := range fn.Body.Statements {
		y, err := g.lowerEffectStatement(st, eff)
		if err != nil {
			return err
		}
		yields = append(yields, y)
	}
	driver, err := machination.Trampoline(g.opts.Registry)
	if err != nil {
		return errorf(diag.GenUnknownEffect, fn.Output.EffectSpan, "effect registry: %v", err)
	}

	gen := &ecma.Program{Body: []ecma.Stmt{ecma.GeneratorFunction(machination.GeneratorName, yields...)}}
	body.Append(&markup.Script{Program: gen}, &markup.Script{Program: driver})
	return nil
}

// lowerEffectStatement turns op("a", ...) into yield {ty:"TAG",args:["a",...,],};
func (g *generator) lowerEffectStatement(st hir.Statement, eff *effects.Effect) (ecma.Stmt, error) {
	es, ok := st.(*hir.ExprStatement)
	if !ok {
		return nil, errorf(diag.GenUnsupportedStatement, st.StmtSpan(), "unsupported statement")
	}
	call, ok := es.Expr.(*hir.FunctionCall)
	if !ok {
		return nil, errorf(diag.GenUnsupportedStatement, es.Span, "statement must call an operation of %s", eff.Name)
	}
	op, ok := eff.Operation(call.Callee)
	if !ok {
		return nil, errorf(diag.GenUnsupportedStatement, call.CalleeSpan,
			"%s is not an operation of %s", g.module.Name(call.Callee), eff.Name)
	}
	if len(call.Children) > 0 {
		return nil, errorf(diag.GenUnsupportedStatement, call.Span, "%s takes no children", op.Name)
	}
	if len(call.Args) != op.Arity {
		return nil, errorf(diag.GenUnsupportedStatement, call.Span,
			"%s expects %d argument(s), found %d", op.Name, op.Arity, len(call.Args))
	}

	args := make([]ecma.Expr, 0, len(call.Args))
	for _, a := range call.Args {
		lit, ok := a.(*hir.StringLiteral)
		if !ok {
			return nil, errorf(diag.GenUnsupportedStatement, a.ExprSpan(), "%s arguments must be string literals", op.Name)
		}
		args = append(args, ecma.Str(lit.Value))
	}

	props := []ecma.Property{ecma.Prop("ty", ecma.Str(eff.Tag))}
	if eff.Multiplexed() {
		props = append(props, ecma.Prop(effects.OpField, ecma.Str(op.Name)))
	}
	props = append(props, ecma.Prop("args", ecma.Array(args...)))
	return ecma.ExprStmt(ecma.Yield(ecma.Object(props...))), nil
}
