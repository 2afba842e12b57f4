// Package effects is the registry of effect capabilities a function may
// declare with `eff`. Each entry names its wire tag and its operations; the
// effect lowering and the trampoline both read from the registry, so a new
// effect needs one entry and nothing else.
package effects

import (
	"errors"
	"fmt"

	"effectful/internal/symbols"
)

// Kind is the closed set of implemented effects.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConsole
)

func (k Kind) String() string {
	switch k {
	case KindConsole:
		return "Console"
	default:
		return "unknown"
	}
}

// LogOp is the fixed identity of Console's log operation.
const LogOp symbols.ID = 0x3c0f8e5a2b1d4e97

// Operation is a single effect operation such as log("text").
type Operation struct {
	Name  string
	ID    symbols.ID
	Arity int
	// Handler is the host callee as a member path, e.g. console.log.
	Handler []string
}

// Effect describes one capability and the tag its descriptors carry at runtime.
type Effect struct {
	Kind       Kind
	Name       string
	ID         symbols.ID
	Tag        string
	Operations []Operation
}

// OpField is the descriptor field naming the operation of a multiplexed effect.
const OpField = "op"

// Multiplexed reports whether descriptors must carry OpField to tell
// operations apart; single-operation effects dispatch on the tag alone.
func (e *Effect) Multiplexed() bool { return len(e.Operations) > 1 }

// Operation returns the operation bound to id.
func (e *Effect) Operation(id symbols.ID) (*Operation, bool) {
	for i := range e.Operations {
		if e.Operations[i].ID == id {
			return &e.Operations[i], true
		}
	}
	return nil, false
}

// Registry is an ordered, immutable set of effects.
type Registry struct {
	effects []Effect
}

var errDuplicate = errors.New("duplicate effect registration")

// NewRegistry validates that names, tags and identities are unique.
func NewRegistry(list ...Effect) (*Registry, error) {
	names := make(map[string]struct{})
	tags := make(map[string]struct{})
	ids := make(map[symbols.ID]string)
	claim := func(id symbols.ID, owner string) error {
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("%s reuses identity %s of %s: %w", owner, id, prev, errDuplicate)
		}
		ids[id] = owner
		return nil
	}
	for _, e := range list {
		if _, ok := names[e.Name]; ok {
			return nil, fmt.Errorf("effect %q: %w", e.Name, errDuplicate)
		}
		if _, ok := tags[e.Tag]; ok {
			return nil, fmt.Errorf("effect %q tag %q: %w", e.Name, e.Tag, errDuplicate)
		}
		names[e.Name], tags[e.Tag] = struct{}{}, struct{}{}
		if err := claim(e.ID, e.Name); err != nil {
			return nil, err
		}
		for _, op := range e.Operations {
			if op.Arity < 0 || len(op.Handler) == 0 {
				return nil, fmt.Errorf("effect %q operation %q: invalid arity or handler", e.Name, op.Name)
			}
			if err := claim(op.ID, e.Name+"."+op.Name); err != nil {
				return nil, err
			}
		}
	}
	return &Registry{effects: list}, nil
}

var defaultRegistry = &Registry{effects: []Effect{
	{
		Kind: KindConsole,
		Name: "Console",
		ID:   symbols.Console,
		Tag:  "__CONSOLE__",
		Operations: []Operation{
			{Name: "log", ID: LogOp, Arity: 1, Handler: []string{"console", "log"}},
		},
	},
}}

// Default returns the built-in registry holding Console.
func Default() *Registry { return defaultRegistry }

// Effects returns the effects in registration order. Do not modify.
func (r *Registry) Effects() []Effect {
	if r == nil {
		return nil
	}
	return r.effects
}

// Lookup finds an effect by the identity its name resolved to.
func (r *Registry) Lookup(id symbols.ID) (*Effect, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.effects {
		if r.effects[i].ID == id {
			return &r.effects[i], true
		}
	}
	return nil, false
}

// KindOf classifies an identity, returning KindUnknown for anything unregistered.
func (r *Registry) KindOf(id symbols.ID) Kind {
	if e, ok := r.Lookup(id); ok {
		return e.Kind
	}
	return KindUnknown
}
