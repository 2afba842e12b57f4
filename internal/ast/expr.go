package ast

import "effectful/internal/source"

// Block is "{ stmt* tail? }". Tail is nil when the block has no trailing expression.
type Block struct {
	Statements []Statement
	Tail       Expr
	Span       source.Span
}

type Statement interface {
	Node
	isStmt()
}

type ExprStatement struct {
	Expr Expr
	Span source.Span
}

func (s *ExprStatement) NodeSpan() source.Span { return s.Span }
func (*ExprStatement) isStmt()                 {}

type Expr interface {
	Node
	isExpr()
}

// StringLiteral holds the literal text without quotes.
type StringLiteral struct {
	Value string
	Span  source.Span
}

// FunctionCall is "Name(args...){children...}"; both lists may be empty.
type FunctionCall struct {
	Name     Ident
	Args     []Expr
	Children []Expr
	Span     source.Span
}

func (e *StringLiteral) NodeSpan() source.Span { return e.Span }
func (e *FunctionCall) NodeSpan() source.Span  { return e.Span }

func (*StringLiteral) isExpr() {}
func (*FunctionCall) isExpr()  {}

// Inspect walks e depth-first, calling f for every expression; returning
// false from f skips that node's arguments and children.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	if call, ok := e.(*FunctionCall); ok {
		for _, a := range call.Args {
			Inspect(a, f)
		}
		for _, c := range call.Children {
			Inspect(c, f)
		}
	}
}
