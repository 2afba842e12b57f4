package ast

import "strings"

const indentUnit = "    "

// Render prints fn in canonical form. Parsing the result yields a tree
// Equal to fn.
func Render(fn *Function) string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(fn.Name.Name)
	b.WriteString("() -> ")
	b.WriteString(fn.Output.Type.Name)
	if fn.Output.Effect != nil {
		b.WriteString(" eff ")
		b.WriteString(fn.Output.Effect.Name)
	}
	b.WriteString(" {\n")
	for _, st := range fn.Body.Statements {
		if es, ok := st.(*ExprStatement); ok {
			b.WriteString(indentUnit)
			renderExpr(&b, es.Expr, 1)
			b.WriteString(";\n")
		}
	}
	if fn.Body.Tail != nil {
		b.WriteString(indentUnit)
		renderExpr(&b, fn.Body.Tail, 1)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

// RenderExpr prints a single expression on one line.
func RenderExpr(e Expr) string {
	var b strings.Builder
	renderExpr(&b, e, -1)
	return b.String()
}

// depth < 0 renders children inline.
func renderExpr(b *strings.Builder, e Expr, depth int) {
	switch e := e.(type) {
	case *StringLiteral:
		b.WriteByte('"')
		b.WriteString(e.Value)
		b.WriteByte('"')
	case *FunctionCall:
		b.WriteString(e.Name.Name)
		if len(e.Args) > 0 {
			b.WriteByte('(')
			for i, a := range e.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				renderExpr(b, a, -1)
			}
			b.WriteByte(')')
		}
		if len(e.Children) == 0 {
			return
		}
		if depth < 0 {
			b.WriteString(" { ")
			for i, c := range e.Children {
				if i > 0 {
					b.WriteString(", ")
				}
				renderExpr(b, c, -1)
			}
			b.WriteString(" }")
			return
		}
		b.WriteString(" {\n")
		for i, c := range e.Children {
			b.WriteString(strings.Repeat(indentUnit, depth+1))
			renderExpr(b, c, depth+1)
			if i < len(e.Children)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteByte('}')
	}
}
