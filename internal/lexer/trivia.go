package lexer

import "effectful/internal/token"

// scanTrivia consumes everything insignificant before the next token.
// Runs of blanks and runs of newlines each fold into a single piece;
// a line comment runs up to, not including, its '\n'.
func (lx *Lexer) scanTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.r.done() {
		start := lx.r.pos
		var kind token.TriviaKind
		switch b := lx.r.cur(); {
		case blank(b):
			lx.r.skipWhile(blank)
			kind = token.TriviaSpace
		case b == '\n':
			lx.r.skipWhile(func(c byte) bool { return c == '\n' })
			kind = token.TriviaNewline
		case b == '/' && lx.r.at(1) == '/':
			lx.r.skipUntil('\n')
			kind = token.TriviaLineComment
		default:
			return out
		}
		t := lx.tokenFrom(token.Invalid, start)
		out = append(out, token.Trivia{Kind: kind, Span: t.Span, Text: t.Text})
	}
	return out
}
