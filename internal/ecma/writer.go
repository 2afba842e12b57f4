package ecma

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Writer serializes a Program to an io.Writer. The first write error is
// sticky: later writes are skipped and the error is returned.
type Writer struct {
	w   io.Writer
	n   int
	err error
}

// NewWriter binds a writer to w. Several writers may share one sink as long
// as only one of them writes at a time.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Written is the total number of bytes written so far.
func (w *Writer) Written() int { return w.n }

// WriteProgram writes p and returns the number of bytes this call wrote.
func (w *Writer) WriteProgram(p *Program) (int, error) {
	start := w.n
	for _, st := range p.Body {
		w.stmt(st)
	}
	return w.n - start, w.err
}

// WriteExpr writes a single expression.
func (w *Writer) WriteExpr(e Expr) (int, error) {
	start := w.n
	w.expr(e)
	return w.n - start, w.err
}

// String renders p into a string.
func String(p *Program) string {
	var b strings.Builder
	if _, err := NewWriter(&b).WriteProgram(p); err != nil {
		return ""
	}
	return b.String()
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	w.n += n
	if err != nil {
		w.err = fmt.Errorf("ecma: write: %w", err)
	}
}

func (w *Writer) stmt(s Stmt) {
	switch s := s.(type) {
	case *BlockStatement:
		w.block(s)
	case *WhileStatement:
		w.raw("while(")
		w.expr(s.Test)
		w.raw(")")
		w.block(s.Body)
	case *IfStatement:
		w.raw("if(")
		w.expr(s.Test)
		w.raw(")")
		w.block(s.Consequent)
		if s.Alternate != nil {
			w.raw("else")
			w.block(s.Alternate)
		}
	case *BreakStatement:
		w.raw("break;")
	case *ExpressionStatement:
		w.expr(s.Expr)
		w.raw(";")
	case *VariableDeclaration:
		w.raw(s.Kind.String())
		w.raw(" ")
		for i, d := range s.Declarations {
			if i > 0 {
				w.raw(",")
			}
			w.pattern(d.ID)
			if d.Init != nil {
				w.raw("=")
				w.expr(d.Init)
			}
		}
		w.raw(";")
	case *FunctionDeclaration:
		if s.Generator {
			w.raw("function* ")
		} else {
			w.raw("function ")
		}
		w.raw(s.Name)
		w.raw("()")
		w.block(s.Body)
	default:
		w.fail(fmt.Sprintf("unsupported statement %T", s))
	}
}

func (w *Writer) block(b *BlockStatement) {
	w.raw("{")
	if b != nil {
		for _, st := range b.Body {
			w.stmt(st)
		}
	}
	w.raw("}")
}

func (w *Writer) expr(e Expr) {
	switch e := e.(type) {
	case *Identifier:
		w.raw(e.Name)
	case *BooleanLiteral:
		w.raw(strconv.FormatBool(e.Value))
	case *StringLiteral:
		w.raw(quote(e.Value))
	case *IntegerLiteral:
		w.raw(strconv.FormatUint(uint64(e.Value), 10))
	case *FloatLiteral:
		w.raw(formatFloat(e.Value))
	case *CallExpression:
		w.callee(e.Callee)
		w.raw("(")
		for _, a := range e.Arguments {
			w.expr(a)
			w.raw(",")
		}
		w.raw(")")
	case *BinaryExpression:
		w.expr(e.Left)
		w.raw(e.Op.String())
		w.expr(e.Right)
	case *StaticMemberExpression:
		w.callee(e.Object)
		w.raw(".")
		w.raw(e.Property)
	case *ComputedMemberExpression:
		w.callee(e.Object)
		w.raw("[")
		w.expr(e.Property)
		w.raw("]")
	case *ObjectExpression:
		w.raw("{")
		for _, p := range e.Properties {
			w.raw(p.Key)
			if p.Value != nil {
				w.raw(":")
				w.expr(p.Value)
			}
			w.raw(",")
		}
		w.raw("}")
	case *ArrayExpression:
		w.raw("[")
		for _, el := range e.Elements {
			w.expr(el)
			w.raw(",")
		}
		w.raw("]")
	case *ArrowFunctionExpression:
		w.raw("()=>")
		w.block(e.Body)
	case *YieldExpression:
		w.raw("yield")
		if e.Argument != nil {
			w.raw(" ")
			w.expr(e.Argument)
		}
	default:
		w.fail(fmt.Sprintf("unsupported expression %T", e))
	}
}

// callee parenthesizes operands that would otherwise bind wrongly in
// call and member position.
func (w *Writer) callee(e Expr) {
	switch e.(type) {
	case *ArrowFunctionExpression, *YieldExpression, *BinaryExpression, *ObjectExpression:
		w.raw("(")
		w.expr(e)
		w.raw(")")
	default:
		w.expr(e)
	}
}

func (w *Writer) pattern(p Pattern) {
	switch p := p.(type) {
	case *Identifier:
		w.raw(p.Name)
	case *ObjectPattern:
		w.raw("{")
		for _, prop := range p.Properties {
			w.raw(prop.Key)
			if prop.Value != nil {
				w.raw(":")
				w.pattern(prop.Value)
			}
			w.raw(",")
		}
		w.raw("}")
	case *ArrayPattern:
		w.raw("[")
		for _, el := range p.Elements {
			w.pattern(el)
			w.raw(",")
		}
		w.raw("]")
	default:
		w.fail(fmt.Sprintf("unsupported pattern %T", p))
	}
}

func (w *Writer) fail(msg string) {
	if w.err == nil {
		w.err = fmt.Errorf("ecma: %s", msg)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// quote wraps s in double quotes, escaping only what would end or break
// the literal.
func quote(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\r\u2028\u2029") && !strings.Contains(s, "</") {
		return `"` + s + `"`
	}
	var b strings.Builder
	b.WriteByte('"')
	prev := rune(0)
	for _, r := range s {
		switch {
		case r == '/' && prev == '<':
			// "</script" would close the host element
			b.WriteString(`\/`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\u2028':
			b.WriteString(`\u2028`)
		case r == '\u2029':
			b.WriteString(`\u2029`)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	b.WriteByte('"')
	return b.String()
}
