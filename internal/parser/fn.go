package parser

import (
	"effectful/internal/ast"
	"effectful/internal/token"
)

// parseFunction разбирает `fn Name() -> Type [eff Effect] Block`.
func (p *Parser) parseFunction() (*ast.Function, bool) {
	fnTok, ok := p.expect(token.KwFn)
	if !ok {
		return nil, false
	}
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}

	open, ok := p.expect(token.LParen)
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expect(token.RParen)
	if !ok {
		return nil, false
	}
	inputs := ast.Inputs{Span: open.Span.Cover(closeTok.Span)}

	if _, ok = p.expect(token.Arrow); !ok {
		return nil, false
	}
	ty, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	output := ast.FunctionOutput{Type: ty}
	if p.at(token.KwEff) {
		p.advance()
		eff, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		output.Effect = &eff
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.Function{
		Name:   name,
		Inputs: inputs,
		Output: output,
		Body:   body,
		Span:   fnTok.Span.Cover(body.Span),
	}, true
}

// parseIdent: утилита: ожидает Ident. На ошибке - репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (ast.Ident, bool) {
	tok, ok := p.expect(token.Ident)
	if !ok {
		return ast.Ident{}, false
	}
	return ast.Ident{Name: tok.Text, Span: tok.Span}, true
}
