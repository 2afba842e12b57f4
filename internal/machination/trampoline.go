// Package machination synthesizes the driver loop that runs an effectful
// main compiled to a generator. The generator yields plain {ty, args}
// descriptors; only this loop ever touches host capabilities.
package machination

import (
	"fmt"

	"effectful/internal/ecma"
	"effectful/internal/effects"
)

const (
	// GeneratorName is the function the effect lowering emits.
	GeneratorName = "main"
	callName      = "main_call"
	effName       = "eff"
)

// Trampoline builds:
//
//	const main_call=main();
//	while(true){
//	  const {done,value:eff,}=main_call.next();
//	  if(done){break;}
//	  if(eff.ty==="<tag>"){<handler>(eff.args[0],...);}
//	}
//
// with one dispatch branch per registered effect, in registry order. An
// effect with several operations dispatches on eff.op inside its branch.
func Trampoline(reg *effects.Registry) (*ecma.Program, error) {
	loop := []ecma.Stmt{
		ecma.Const(
			ecma.ObjPat(ecma.PatProp("done", nil), ecma.PatProp("value", ecma.Ident(effName))),
			ecma.Ident(callName).Member("next").Call(),
		),
		ecma.If(ecma.Ident("done"), ecma.Break()),
	}
	for _, eff := range reg.Effects() {
		branch, err := dispatch(&eff)
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", eff.Name, err)
		}
		loop = append(loop, branch)
	}

	return &ecma.Program{Body: []ecma.Stmt{
		ecma.Const(ecma.Ident(callName), ecma.Ident(GeneratorName).Call()),
		ecma.While(ecma.Bool(true), loop...),
	}}, nil
}

func dispatch(eff *effects.Effect) (ecma.Stmt, error) {
	test := ecma.Ident(effName).Member("ty").StrictEq(ecma.Str(eff.Tag))
	if !eff.Multiplexed() {
		if len(eff.Operations) == 0 {
			return ecma.If(test), nil
		}
		call, err := handlerCall(eff.Operations[0])
		if err != nil {
			return nil, err
		}
		return ecma.If(test, call), nil
	}
	body := make([]ecma.Stmt, 0, len(eff.Operations))
	for _, op := range eff.Operations {
		call, err := handlerCall(op)
		if err != nil {
			return nil, err
		}
		body = append(body, ecma.If(ecma.Ident(effName).Member(effects.OpField).StrictEq(ecma.Str(op.Name)), call))
	}
	return ecma.If(test, body...), nil
}

func handlerCall(op effects.Operation) (ecma.Stmt, error) {
	if len(op.Handler) == 0 {
		return nil, fmt.Errorf("operation %s has no handler", op.Name)
	}
	args := make([]ecma.Expr, op.Arity)
	for i := range args {
		idx, err := argIndex(i)
		if err != nil {
			return nil, err
		}
		args[i] = ecma.Ident(effName).Member("args").Index(ecma.Int(idx))
	}
	handler := ecma.Path(op.Handler[0], op.Handler[1:]...)
	return ecma.ExprStmt(ecma.Call(handler, args...)), nil
}
