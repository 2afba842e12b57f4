package symbols

import (
	"errors"
	"testing"
)

func TestPreludeConstants(t *testing.T) {
	want := map[string]ID{
		"Html":      0xa624256d78ea27e8,
		"Body":      0xf65ea75ed430d7aa,
		"Paragraph": 0x829569a9b2c10679,
		"Console":   0x6f21a62dd1571f6e,
	}
	s := NewScopes()
	for name, id := range want {
		got, ok := s.Resolve(name)
		if !ok || got != id {
			t.Errorf("Resolve(%q) = %s,%v want %s", name, got, ok, id)
		}
		if back, _ := s.Name(id); back != name {
			t.Errorf("Name(%s) = %q want %q", id, back, name)
		}
	}
}

func TestShadowingAndPop(t *testing.T) {
	s := NewScopes()
	alloc := NewSequentialAllocator()
	s.Push(ScopeModule)
	outer, err := s.Declare("x", alloc)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	s.Push(ScopeFunction)
	inner, err := s.Declare("x", alloc)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if got, _ := s.Resolve("x"); got != inner {
		t.Fatalf("innermost binding must win: got %s want %s", got, inner)
	}
	s.Pop()
	if got, _ := s.Resolve("x"); got != outer {
		t.Fatalf("after pop want %s, got %s", outer, got)
	}
	if name, ok := s.Name(inner); !ok || name != "x" {
		t.Fatalf("reverse map must keep popped names")
	}
	s.Pop()
	s.Pop()
	if s.Depth() != 1 || s.Current() != ScopePrelude {
		t.Fatalf("prelude scope must survive pops, depth=%d", s.Depth())
	}
	if _, ok := s.Resolve("x"); ok {
		t.Fatalf("x must be out of scope")
	}
}

func TestDeclareCollision(t *testing.T) {
	cases := []struct {
		name  string
		alloc *FixedAllocator
	}{
		{"prelude id", &FixedAllocator{IDs: []ID{Body}}},
		{"repeated id", &FixedAllocator{IDs: []ID{7, 7}}},
		{"exhausted", &FixedAllocator{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScopes()
			var err error
			for range 2 {
				if _, err = s.Declare("f", tc.alloc); err != nil {
					break
				}
			}
			if !errors.Is(err, ErrIDCollision) {
				t.Fatalf("want ErrIDCollision, got %v", err)
			}
		})
	}
}

func TestBindRebindSameName(t *testing.T) {
	s := NewScopes()
	s.Push(ScopeEffect)
	if err := s.Bind("Console", Console); err != nil {
		t.Fatalf("rebinding a well-known id under its own name: %v", err)
	}
	if err := s.Bind("other", Console); !errors.Is(err, ErrIDCollision) {
		t.Fatalf("want collision, got %v", err)
	}
}

func TestRandomAllocatorAvoidsPrelude(t *testing.T) {
	alloc := NewRandomAllocator()
	seen := make(map[ID]struct{})
	for _, e := range Prelude() {
		seen[e.ID] = struct{}{}
	}
	for range 10000 {
		id := alloc.Next()
		if !id.IsValid() {
			t.Fatalf("allocator returned NoID")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("allocator produced a known identity %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSeededAllocatorReproducible(t *testing.T) {
	a, b := NewSeededAllocator(42), NewSeededAllocator(42)
	for range 16 {
		if a.Next() != b.Next() {
			t.Fatalf("same seed must give same sequence")
		}
	}
}
