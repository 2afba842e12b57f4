package lexer

import "effectful/internal/token"

// scanWord reads [A-Za-z_][A-Za-z0-9_]* and classifies keywords.
func (lx *Lexer) scanWord() token.Token {
	start := lx.r.pos
	lx.r.skipWhile(identPart)
	tok := lx.tokenFrom(token.Ident, start)
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
	}
	return tok
}
