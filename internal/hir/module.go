package hir

import (
	"effectful/internal/source"
	"effectful/internal/symbols"
)

// Module mirrors ast.Module with every name replaced by an identity.
// IDMap holds a name for every identity referenced anywhere in Items.
type Module struct {
	Items map[symbols.ID]ModuleItem
	IDMap map[symbols.ID]string
	// Main is the identity declared for the item keyed "main".
	Main symbols.ID
}

// MainFunction returns the function declared under "main", or nil.
func (m *Module) MainFunction() *Function {
	if m == nil {
		return nil
	}
	fn, _ := m.Items[m.Main].(*Function)
	return fn
}

// Name returns the source name recorded for id.
func (m *Module) Name(id symbols.ID) string {
	if name, ok := m.IDMap[id]; ok {
		return name
	}
	return id.String()
}

type ModuleItem interface {
	ItemID() symbols.ID
	isModuleItem()
}

// FunctionOutput holds the resolved return type and the optional effect;
// Effect is symbols.NoID when the function is pure.
type FunctionOutput struct {
	Type       symbols.ID
	TypeSpan   source.Span
	Effect     symbols.ID
	EffectSpan source.Span
}

type Function struct {
	ID     symbols.ID
	Name   string // as written after `fn`
	Output FunctionOutput
	Body   Block
	Span   source.Span
}

func (f *Function) ItemID() symbols.ID { return f.ID }
func (*Function) isModuleItem()        {}

// HasEffect reports whether the function declared an effect.
func (f *Function) HasEffect() bool { return f.Output.Effect.IsValid() }
