package symbols

import (
	"errors"
	"fmt"
	"maps"
)

// ScopeKind tells what introduced a scope.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopePrelude            // built-in names, always at the bottom
	ScopeModule             // top-level declarations
	ScopeEffect             // operations of the declared effect
	ScopeFunction           // a function body
)

var scopeNames = [...]string{"invalid", "prelude", "module", "effect", "function"}

func (k ScopeKind) String() string {
	if int(k) < len(scopeNames) {
		return scopeNames[k]
	}
	return scopeNames[ScopeInvalid]
}

type frame struct {
	kind  ScopeKind
	names map[string]ID
}

// ErrIDCollision is returned when an identity is bound to a second name.
var ErrIDCollision = errors.New("identity collision")

// Scopes is a stack of name→ID maps (innermost last) together with a reverse
// ID→name map. The reverse map only grows: popping a scope keeps its names.
type Scopes struct {
	stack []frame
	names map[ID]string
}

// NewScopes returns a resolver seeded with the prelude scope.
func NewScopes() *Scopes {
	s := &Scopes{names: make(map[ID]string, 16)}
	s.Push(ScopePrelude)
	for _, e := range Prelude() {
		// prelude identities are distinct constants
		_ = s.Bind(e.Name, e.ID)
	}
	return s
}

// Push opens a new innermost scope.
func (s *Scopes) Push(kind ScopeKind) {
	s.stack = append(s.stack, frame{kind: kind, names: make(map[string]ID)})
}

// Pop closes the innermost scope. The prelude scope is never popped.
func (s *Scopes) Pop() {
	if len(s.stack) <= 1 {
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of open scopes including the prelude.
func (s *Scopes) Depth() int { return len(s.stack) }

// Current returns the kind of the innermost scope.
func (s *Scopes) Current() ScopeKind {
	if len(s.stack) == 0 {
		return ScopeInvalid
	}
	return s.stack[len(s.stack)-1].kind
}

// Bind binds name to a known identity in the innermost scope. Rebinding an
// identity under the name it already carries is allowed (well-known Ids are
// bound every time their scope opens); any other reuse is ErrIDCollision.
func (s *Scopes) Bind(name string, id ID) error {
	if !id.IsValid() {
		return fmt.Errorf("bind %q: %w", name, ErrIDCollision)
	}
	if prev, ok := s.names[id]; ok && prev != name {
		return fmt.Errorf("bind %q to %s already used by %q: %w", name, id, prev, ErrIDCollision)
	}
	s.names[id] = name
	s.stack[len(s.stack)-1].names[name] = id
	return nil
}

// Declare draws a fresh identity from alloc and binds name to it in the
// innermost scope. An identity already present in the reverse map, for any
// name, is ErrIDCollision.
func (s *Scopes) Declare(name string, alloc Allocator) (ID, error) {
	id := alloc.Next()
	if !id.IsValid() {
		return NoID, fmt.Errorf("declare %q: allocator returned %s: %w", name, id, ErrIDCollision)
	}
	if prev, ok := s.names[id]; ok {
		return NoID, fmt.Errorf("declare %q: %s already used by %q: %w", name, id, prev, ErrIDCollision)
	}
	s.names[id] = name
	s.stack[len(s.stack)-1].names[name] = id
	return id, nil
}

// Resolve searches scopes from innermost to outermost.
func (s *Scopes) Resolve(name string) (ID, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if id, ok := s.stack[i].names[name]; ok {
			return id, true
		}
	}
	return NoID, false
}

// Name recovers the name an identity was bound to, even after its scope closed.
func (s *Scopes) Name(id ID) (string, bool) {
	name, ok := s.names[id]
	return name, ok
}

// Names returns a copy of the reverse map.
func (s *Scopes) Names() map[ID]string {
	return maps.Clone(s.names)
}
