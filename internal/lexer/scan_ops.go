package lexer

import (
	"fmt"
	"unicode/utf8"

	"effectful/internal/diag"
	"effectful/internal/token"
)

var singlePunct = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	';': token.Semicolon,
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.r.pos
	b := lx.r.cur()
	kind, ok := singlePunct[b]
	switch {
	case ok:
		lx.r.advance()
	case b == '-' && lx.r.at(1) == '>':
		lx.r.pos += 2
		kind = token.Arrow
	case b >= utf8.RuneSelf:
		lx.r.advanceRune()
		kind = token.Invalid
	default:
		lx.r.advance()
		kind = token.Invalid
	}
	tok := lx.tokenFrom(kind, start)
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", tok.Text))
	}
	return tok
}
