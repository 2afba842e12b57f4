package parser

import (
	"effectful/internal/ast"
	"effectful/internal/diag"
	"effectful/internal/token"
)

// parseBlock разбирает `{ (Expr ';')* Expr? }`; выражение без ';' перед '}'
// становится хвостом блока.
func (p *Parser) parseBlock() (ast.Block, bool) {
	open, ok := p.expect(token.LBrace)
	if !ok {
		return ast.Block{}, false
	}
	block := ast.Block{Span: open.Span}
	for {
		switch {
		case p.at(token.RBrace):
			closeTok := p.advance()
			block.Span = block.Span.Cover(closeTok.Span)
			return block, true
		case p.at(token.Ident) || p.at(token.StringLit):
			expr, ok := p.parseExpr()
			if !ok {
				return ast.Block{}, false
			}
			switch {
			case p.at(token.Semicolon):
				semi := p.advance()
				block.Statements = append(block.Statements, &ast.ExprStatement{
					Expr: expr,
					Span: expr.NodeSpan().Cover(semi.Span),
				})
			case p.at(token.RBrace):
				closeTok := p.advance()
				block.Tail = expr
				block.Span = block.Span.Cover(closeTok.Span)
				return block, true
			default:
				p.unexpected(diag.SynUnexpectedToken, continuationsAfter(expr, token.Semicolon, token.RBrace)...)
				return ast.Block{}, false
			}
		default:
			p.unexpected(diag.SynUnexpectedToken, token.Ident, token.StringLit, token.RBrace)
			return ast.Block{}, false
		}
	}
}

// continuationsAfter lists what may follow expr: an argument-less call can
// still take '(' and a child-less one '{'.
func continuationsAfter(expr ast.Expr, rest ...token.Kind) []token.Kind {
	var out []token.Kind
	if call, ok := expr.(*ast.FunctionCall); ok {
		if len(call.Args) == 0 && len(call.Children) == 0 {
			out = append(out, token.LParen)
		}
		if len(call.Children) == 0 {
			out = append(out, token.LBrace)
		}
	}
	return append(out, rest...)
}
