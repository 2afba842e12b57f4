package lexer

import (
	"testing"

	"effectful/internal/source"
)

func TestReader(t *testing.T) {
	fs := source.NewFileSet()
	r := newReader(fs.Get(fs.AddVirtual("r.eff", []byte("ab жc"))))

	if r.cur() != 'a' || r.at(1) != 'b' || r.at(99) != 0 {
		t.Fatalf("lookahead broken: %q %q", r.cur(), r.at(1))
	}
	if !r.accept('a') || r.accept('x') {
		t.Fatalf("accept must consume only a match")
	}
	r.skipWhile(identPart)
	r.skipWhile(blank)
	start := r.pos
	r.advanceRune()
	if sp := r.span(start); sp.Len() != 2 {
		t.Fatalf("multi-byte rune span = %v", sp)
	}
	r.skipUntil('!')
	if !r.done() || r.advance() != 0 {
		t.Fatalf("reader should be exhausted at %d", r.pos)
	}
}
