package ast

import "effectful/internal/source"

// MainKey is the fixed key under which the parsed function is stored.
const MainKey = "main"

// Node is implemented by every syntax node.
type Node interface {
	NodeSpan() source.Span
}

// Module maps declaration names to items. A parsed module always holds a
// single entry keyed MainKey.
type Module struct {
	Items map[string]ModuleItem
	Span  source.Span
}

// NewModule wraps fn under MainKey regardless of its declared name.
func NewModule(fn *Function) *Module {
	return &Module{
		Items: map[string]ModuleItem{MainKey: fn},
		Span:  fn.Span,
	}
}

// Main returns the function stored under MainKey, or nil.
func (m *Module) Main() *Function {
	if m == nil {
		return nil
	}
	fn, _ := m.Items[MainKey].(*Function)
	return fn
}

type ModuleItem interface {
	Node
	isModuleItem()
}

// Ident is a name together with where it was written.
type Ident struct {
	Name string
	Span source.Span
}

// Inputs is the parameter list placeholder; only "()" is accepted.
type Inputs struct {
	Span source.Span
}

// FunctionOutput is "-> Type [eff Effect]".
type FunctionOutput struct {
	Type   Ident
	Effect *Ident
}

type Function struct {
	Name   Ident
	Inputs Inputs
	Output FunctionOutput
	Body   Block
	Span   source.Span
}

func (f *Function) NodeSpan() source.Span { return f.Span }
func (*Function) isModuleItem()           {}

// HasEffect reports whether the signature carries an eff annotation.
func (f *Function) HasEffect() bool { return f.Output.Effect != nil }
