package hir

import (
	"effectful/internal/source"
	"effectful/internal/symbols"
)

type Block struct {
	Statements []Statement
	Tail       Expr // nil when absent
	Span       source.Span
}

type Statement interface {
	StmtSpan() source.Span
	isStmt()
}

type ExprStatement struct {
	Expr Expr
	Span source.Span
}

func (s *ExprStatement) StmtSpan() source.Span { return s.Span }
func (*ExprStatement) isStmt()                 {}

type Expr interface {
	ExprSpan() source.Span
	isExpr()
}

type StringLiteral struct {
	Value string
	Span  source.Span
}

type FunctionCall struct {
	Callee     symbols.ID
	CalleeSpan source.Span
	Args       []Expr
	Children   []Expr
	Span       source.Span
}

func (e *StringLiteral) ExprSpan() source.Span { return e.Span }
func (e *FunctionCall) ExprSpan() source.Span  { return e.Span }

func (*StringLiteral) isExpr() {}
func (*FunctionCall) isExpr()  {}

// WalkCalls visits every call reachable from e, outermost first, recursing
// through positional arguments and then children.
func WalkCalls(e Expr, f func(*FunctionCall)) {
	call, ok := e.(*FunctionCall)
	if !ok {
		return
	}
	f(call)
	for _, a := range call.Args {
		WalkCalls(a, f)
	}
	for _, c := range call.Children {
		WalkCalls(c, f)
	}
}

// WalkBlockCalls visits every call in the statements and the tail of b.
func WalkBlockCalls(b *Block, f func(*FunctionCall)) {
	for _, st := range b.Statements {
		if es, ok := st.(*ExprStatement); ok {
			WalkCalls(es.Expr, f)
		}
	}
	if b.Tail != nil {
		WalkCalls(b.Tail, f)
	}
}
