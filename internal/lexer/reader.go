package lexer

import (
	"unicode/utf8"

	"effectful/internal/source"
)

// reader walks the bytes of one file. Offsets fit in uint32 because
// source.FileSet refuses larger files.
type reader struct {
	src  []byte
	file source.FileID
	pos  uint32
}

func newReader(f *source.File) reader {
	return reader{src: f.Content, file: f.ID}
}

func (r *reader) done() bool { return int(r.pos) >= len(r.src) }

// at returns the byte n positions ahead, or 0 past the end.
func (r *reader) at(n uint32) byte {
	if i := int(r.pos + n); i < len(r.src) {
		return r.src[i]
	}
	return 0
}

func (r *reader) cur() byte { return r.at(0) }

func (r *reader) advance() byte {
	b := r.cur()
	if !r.done() {
		r.pos++
	}
	return b
}

// advanceRune steps over a whole UTF-8 sequence so spans never split one.
func (r *reader) advanceRune() {
	if r.done() {
		return
	}
	_, size := utf8.DecodeRune(r.src[r.pos:])
	r.pos += uint32(size)
}

func (r *reader) accept(b byte) bool {
	if !r.done() && r.cur() == b {
		r.pos++
		return true
	}
	return false
}

func (r *reader) skipWhile(pred func(byte) bool) {
	for !r.done() && pred(r.cur()) {
		r.pos++
	}
}

func (r *reader) skipUntil(stop byte) {
	r.skipWhile(func(b byte) bool { return b != stop })
}

func (r *reader) span(start uint32) source.Span {
	return source.Span{File: r.file, Start: start, End: r.pos}
}

func identStart(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func identPart(b byte) bool { return identStart(b) || '0' <= b && b <= '9' }

// horizontal whitespace; '\n' is its own trivia kind
func blank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }
