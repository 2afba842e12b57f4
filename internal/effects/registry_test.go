package effects

import (
	"errors"
	"testing"

	"effectful/internal/symbols"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	e, ok := r.Lookup(symbols.Console)
	if !ok {
		t.Fatalf("Console must be registered")
	}
	if e.Tag != "__CONSOLE__" || e.Kind != KindConsole {
		t.Fatalf("unexpected console entry: %+v", e)
	}
	op, ok := e.Operation(LogOp)
	if !ok || op.Name != "log" || op.Arity != 1 {
		t.Fatalf("log operation missing: %+v", op)
	}
	if r.KindOf(symbols.HTML) != KindUnknown {
		t.Fatalf("Html is not an effect")
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	base := Effect{Name: "A", ID: 1, Tag: "__A__", Operations: []Operation{
		{Name: "op", ID: 2, Arity: 1, Handler: []string{"a"}},
	}}
	cases := []struct {
		name  string
		other Effect
	}{
		{"same name", Effect{Name: "A", ID: 3, Tag: "__B__"}},
		{"same tag", Effect{Name: "B", ID: 3, Tag: "__A__"}},
		{"same id", Effect{Name: "B", ID: 2, Tag: "__B__"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRegistry(base, tc.other); !errors.Is(err, errDuplicate) {
				t.Fatalf("want duplicate error, got %v", err)
			}
		})
	}
	if _, err := NewRegistry(base, Effect{Name: "B", ID: 3, Tag: "__B__"}); err != nil {
		t.Fatalf("distinct effects rejected: %v", err)
	}
}
