package diag

import (
	"cmp"
	"slices"
)

// Bag accumulates the diagnostics of one compilation. A nil *Bag reads as
// empty.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 means
// unlimited.
func NewBag(limit int) *Bag {
	return &Bag{max: limit, items: make([]Diagnostic, 0, min(max(limit, 8), 64))}
}

func (b *Bag) full() bool { return b.max > 0 && len(b.items) >= b.max }

// Add stores d unless the bag is at its limit, and reports whether it did.
func (b *Bag) Add(d Diagnostic) bool {
	if b.full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) any(sev Severity) bool {
	return slices.ContainsFunc(b.Items(), func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) HasErrors() bool { return b.any(SevError) }

// HasWarnings reports whether any diagnostic is a warning or worse.
func (b *Bag) HasWarnings() bool { return b.any(SevWarning) }

func (b *Bag) Len() int { return len(b.Items()) }

// Items exposes the stored diagnostics. Callers must not modify the slice.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// Errors returns only diagnostics with error severity.
func (b *Bag) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range b.Items() {
		if d.Severity >= SevError {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends everything in other. The limit grows to fit, so merged
// entries are never lost.
func (b *Bag) Merge(other *Bag) {
	more := other.Items()
	if b.max > 0 {
		b.max = max(b.max, len(b.items)+len(more))
	}
	b.items = append(b.items, more...)
}

// Sort orders diagnostics by file, start, end, descending severity and
// code, keeping insertion order among equals.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops diagnostics repeating an earlier code, span and message.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span string
		msg  string
	}
	seen := make(map[key]bool, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary.String(), d.Message}
		dup := seen[k]
		seen[k] = true
		return dup
	})
}

// PromoteWarnings turns every warning into an error.
func (b *Bag) PromoteWarnings() {
	for i, d := range b.items {
		if d.Severity == SevWarning {
			b.items[i].Severity = SevError
		}
	}
}
