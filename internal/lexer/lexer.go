package lexer

import (
	"effectful/internal/source"
	"effectful/internal/token"
)

// Lexer turns one source file into significant tokens, each carrying the
// trivia that preceded it.
type Lexer struct {
	src     *source.File
	r       reader
	opts    Options
	peeked  *token.Token
	pending []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{src: file, r: newReader(file), opts: opts}
}

// Next returns the next significant token. Once the input is exhausted it
// keeps returning EOF; trivia before EOF is dropped.
func (lx *Lexer) Next() token.Token {
	if t := lx.peeked; t != nil {
		lx.peeked = nil
		return *t
	}
	lx.pending = lx.scanTrivia()
	if lx.r.done() {
		lx.pending = nil
		at := lx.r.span(lx.r.pos)
		return token.Token{Kind: token.EOF, Span: at}
	}
	tok := lx.scanToken()
	tok.Leading, lx.pending = lx.pending, nil
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	switch b := lx.r.cur(); {
	case identStart(b):
		return lx.scanWord()
	case b == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the token Next would return without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.peeked == nil {
		t := lx.Next()
		lx.peeked = &t
	}
	return *lx.peeked
}

// All drains the lexer, returning every token including the final EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) tokenFrom(kind token.Kind, start uint32) token.Token {
	sp := lx.r.span(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.src.Content[sp.Start:sp.End])}
}
