package parser

import (
	"fmt"
	"strings"

	"effectful/internal/diag"
	"effectful/internal/source"
	"effectful/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// Для EOF используем позицию сразу после последнего токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.Tail()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	code := diag.SynUnexpectedToken
	if k == token.Ident {
		code = diag.SynExpectIdentifier
	}
	p.unexpected(code, k)
	return token.Token{Kind: token.Invalid, Span: p.getDiagnosticSpan()}, false
}

// unexpected reports the current token together with the set of kinds the
// parser would have accepted here. An Invalid token was already reported by
// the lexer, so only the failure is recorded.
func (p *Parser) unexpected(code diag.Code, expected ...token.Kind) {
	p.failed = true
	found := p.lx.Peek()
	if found.Kind == token.Invalid {
		return
	}
	p.report(code, diag.SevError, p.getDiagnosticSpan(), formatExpected(found, expected))
}

func formatExpected(found token.Token, expected []token.Kind) string {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}
	if len(names) == 1 {
		return fmt.Sprintf("expected %s, found %s", names[0], found.Describe())
	}
	return fmt.Sprintf("expected one of %s, found %s", strings.Join(names, ", "), found.Describe())
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false // нет reporter - ничего не записали
	}
	if p.opts.Enough() {
		return false // достигли максимального количества ошибок
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}
