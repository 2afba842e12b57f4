// Package testkit holds structural checks shared by tests across the
// pipeline.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"effectful/internal/ast"
	"effectful/internal/hir"
	"effectful/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed module:
// 1) the module span is non-empty and within file content bounds
// 2) every node span is non-empty and points at sf
// 3) every node span is contained in its parent's span
func CheckSpanInvariants(m *ast.Module, sf *source.File) error {
	if m == nil || sf == nil {
		return fmt.Errorf("nil module or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if m.Span.End <= m.Span.Start {
		return fmt.Errorf("module span is empty: %v", m.Span)
	}
	if m.Span.End > lenContent {
		return fmt.Errorf("module span end beyond content: %d > %d", m.Span.End, lenContent)
	}

	check := func(what string, sp, parent source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if !parent.Contains(sp) {
			return fmt.Errorf("%s span %v is outside %v", what, sp, parent)
		}
		return nil
	}

	for key, item := range m.Items {
		fn, ok := item.(*ast.Function)
		if !ok {
			return fmt.Errorf("item %q is %T, want *ast.Function", key, item)
		}
		if err := check("function", fn.Span, m.Span); err != nil {
			return err
		}
		if err := check("name", fn.Name.Span, fn.Span); err != nil {
			return err
		}
		if err := check("body", fn.Body.Span, fn.Span); err != nil {
			return err
		}
		for _, st := range fn.Body.Statements {
			if err := check("statement", st.NodeSpan(), fn.Body.Span); err != nil {
				return err
			}
			if es, ok := st.(*ast.ExprStatement); ok {
				if err := checkExpr(es.Expr, es.Span, check); err != nil {
					return err
				}
			}
		}
		if fn.Body.Tail != nil {
			if err := checkExpr(fn.Body.Tail, fn.Body.Span, check); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkExpr(e ast.Expr, parent source.Span, check func(string, source.Span, source.Span) error) error {
	if err := check("expression", e.NodeSpan(), parent); err != nil {
		return err
	}
	call, ok := e.(*ast.FunctionCall)
	if !ok {
		return nil
	}
	for _, sub := range append(append([]ast.Expr(nil), call.Args...), call.Children...) {
		if err := checkExpr(sub, call.Span, check); err != nil {
			return err
		}
	}
	return nil
}

// CheckIDInvariants verifies that every identity referenced in m has a
// name in its reverse map.
func CheckIDInvariants(m *hir.Module) error {
	if m == nil {
		return fmt.Errorf("nil module")
	}
	for _, id := range hir.UsedIDs(m) {
		if _, ok := m.IDMap[id]; !ok {
			return fmt.Errorf("dangling id %s", id)
		}
	}
	return nil
}
