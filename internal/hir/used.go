package hir

import (
	"slices"

	"effectful/internal/symbols"
)

// UsedIDs returns every identity referenced anywhere in m, sorted and unique.
func UsedIDs(m *Module) []symbols.ID {
	seen := make(map[symbols.ID]struct{})
	add := func(id symbols.ID) {
		if id.IsValid() {
			seen[id] = struct{}{}
		}
	}
	for id, item := range m.Items {
		add(id)
		fn, ok := item.(*Function)
		if !ok {
			continue
		}
		add(fn.Output.Type)
		add(fn.Output.Effect)
		WalkBlockCalls(&fn.Body, func(c *FunctionCall) { add(c.Callee) })
	}
	out := make([]symbols.ID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
