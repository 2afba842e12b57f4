package lexer

import (
	"effectful/internal/diag"
	"effectful/internal/token"
)

// scanString reads a "..." literal. Newlines are allowed inside; escapes are
// not, and a backslash poisons the whole literal into an Invalid token.
func (lx *Lexer) scanString() token.Token {
	start := lx.r.pos
	lx.r.advance()
	for !lx.r.done() {
		switch lx.r.cur() {
		case '"':
			lx.r.advance()
			return lx.tokenFrom(token.StringLit, start)
		case '\\':
			esc := lx.r.pos
			lx.r.advance()
			lx.errLex(diag.LexBadEscape, lx.r.span(esc), "backslash is not allowed in string literals")
			// resync on the closing quote so one bad escape is one error
			lx.r.skipUntil('"')
			lx.r.accept('"')
			return lx.tokenFrom(token.Invalid, start)
		default:
			lx.r.advance()
		}
	}
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
