package parser

import (
	"effectful/internal/ast"
	"effectful/internal/diag"
	"effectful/internal/token"
)

// parseExpr := FunctionCall | StringLiteral
func (p *Parser) parseExpr() (ast.Expr, bool) {
	switch {
	case p.at(token.StringLit):
		tok := p.advance()
		return &ast.StringLiteral{Value: tok.StringValue(), Span: tok.Span}, true
	case p.at(token.Ident):
		return p.parseCall()
	default:
		p.unexpected(diag.SynUnexpectedToken, token.Ident, token.StringLit)
		return nil, false
	}
}

// parseCall := Ident ('(' list ')')? ('{' list '}')?
func (p *Parser) parseCall() (ast.Expr, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	call := &ast.FunctionCall{Name: name, Span: name.Span}
	if p.at(token.LParen) {
		p.advance()
		args, ok := p.parseList(token.RParen)
		if !ok {
			return nil, false
		}
		call.Args = args
		call.Span = call.Span.Cover(p.lastSpan)
	}
	if p.at(token.LBrace) {
		p.advance()
		children, ok := p.parseList(token.RBrace)
		if !ok {
			return nil, false
		}
		call.Children = children
		call.Span = call.Span.Cover(p.lastSpan)
	}
	return call, true
}

// parseList := (Expr (',' Expr)*)? closing; the opening token is already consumed.
func (p *Parser) parseList(closing token.Kind) ([]ast.Expr, bool) {
	var out []ast.Expr
	if p.at(closing) {
		p.advance()
		return out, true
	}
	for {
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		out = append(out, expr)
		switch {
		case p.at(token.Comma):
			p.advance()
		case p.at(closing):
			p.advance()
			return out, true
		default:
			p.unexpected(diag.SynUnexpectedToken, continuationsAfter(expr, token.Comma, closing)...)
			return nil, false
		}
	}
}
