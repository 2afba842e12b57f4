package ast

// Equal compares two modules structurally, ignoring spans.
func Equal(a, b *Module) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Items) != len(b.Items) {
		return false
	}
	for name, ia := range a.Items {
		ib, ok := b.Items[name]
		if !ok {
			return false
		}
		fa, okA := ia.(*Function)
		fb, okB := ib.(*Function)
		if !okA || !okB || !FunctionEqual(fa, fb) {
			return false
		}
	}
	return true
}

// FunctionEqual compares two functions structurally, ignoring spans.
func FunctionEqual(a, b *Function) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name.Name != b.Name.Name || a.Output.Type.Name != b.Output.Type.Name {
		return false
	}
	if (a.Output.Effect == nil) != (b.Output.Effect == nil) {
		return false
	}
	if a.Output.Effect != nil && a.Output.Effect.Name != b.Output.Effect.Name {
		return false
	}
	if len(a.Body.Statements) != len(b.Body.Statements) {
		return false
	}
	for i := range a.Body.Statements {
		sa, okA := a.Body.Statements[i].(*ExprStatement)
		sb, okB := b.Body.Statements[i].(*ExprStatement)
		if !okA || !okB || !ExprEqual(sa.Expr, sb.Expr) {
			return false
		}
	}
	return ExprEqual(a.Body.Tail, b.Body.Tail)
}

// ExprEqual compares two expressions structurally, ignoring spans.
func ExprEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *StringLiteral:
		bb, ok := b.(*StringLiteral)
		return ok && a.Value == bb.Value
	case *FunctionCall:
		bb, ok := b.(*FunctionCall)
		if !ok || a.Name.Name != bb.Name.Name {
			return false
		}
		return exprsEqual(a.Args, bb.Args) && exprsEqual(a.Children, bb.Children)
	}
	return false
}

func exprsEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ExprEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
