package codegen

import (
	"effectful/internal/diag"
	"effectful/internal/hir"
	"effectful/internal/markup"
)

// lowerMarkup maps an expression onto the builtin table. Html and Body
// take their child list; Paragraph takes its first positional argument.
func (g *generator) lowerMarkup(e hir.Expr) (markup.Child, error) {
	switch e := e.(type) {
	case *hir.StringLiteral:
		return markup.Text(e.Value), nil
	case *hir.FunctionCall:
		b := LookupBuiltin(e.Callee)
		var src []hir.Expr
		switch b {
		case BuiltinHtml, BuiltinBody:
			src = e.Children
		case BuiltinParagraph:
			if len(e.Args) == 0 {
				return nil, errorf(diag.GenBadArity, e.Span, "%s expects one argument", b)
			}
			src = e.Args[:1]
		default:
			return nil, errorf(diag.GenUnknownBuiltin, e.CalleeSpan,
				"unknown markup element %q", g.module.Name(e.Callee))
		}
		el := &markup.Element{Name: b.Tag(), Children: make([]markup.Child, 0, len(src))}
		for _, c := range src {
			child, err := g.lowerMarkup(c)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		}
		return el, nil
	}
	return nil, errorf(diag.GenUnsupportedStatement, e.ExprSpan(), "unsupported expression")
}
