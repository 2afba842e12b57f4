package lexer_test

import (
	"testing"

	"effectful/internal/diag"
	"effectful/internal/lexer"
	"effectful/internal/source"
	"effectful/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.eff", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenStream(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"signature", "fn main() -> Html eff Console", []token.Kind{
			token.KwFn, token.Ident, token.LParen, token.RParen, token.Arrow,
			token.Ident, token.KwEff, token.Ident, token.EOF,
		}},
		{"call", `Paragraph("x"){a, b};`, []token.Kind{
			token.Ident, token.LParen, token.StringLit, token.RParen,
			token.LBrace, token.Ident, token.Comma, token.Ident, token.RBrace,
			token.Semicolon, token.EOF,
		}},
		{"comment", "// header\nfn // trailing\nmain", []token.Kind{
			token.KwFn, token.Ident, token.EOF,
		}},
		{"keyword prefix", "fnx effy", []token.Kind{token.Ident, token.Ident, token.EOF}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.input)
			got := kinds(lx.All())
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("token %d: got %v, want %v (all: %v)", i, got[i], tc.want[i], got)
				}
			}
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %+v", bag.Items())
			}
		})
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "fn  main ( )\n-> Html"
	lx, _ := makeTestLexer(input)
	for _, tok := range lx.All() {
		if input[tok.Span.Start:tok.Span.End] != tok.Text {
			t.Fatalf("span %v does not match text %q", tok.Span, tok.Text)
		}
	}
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("  // note\n\nfn")
	tok := lx.Next()
	if tok.Kind != token.KwFn {
		t.Fatalf("want fn, got %v", tok.Kind)
	}
	want := []token.TriviaKind{token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline}
	if len(tok.Leading) != len(want) {
		t.Fatalf("leading = %+v", tok.Leading)
	}
	for i, tr := range tok.Leading {
		if tr.Kind != want[i] {
			t.Fatalf("trivia %d: got %v want %v", i, tr.Kind, want[i])
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("fn main")
	if lx.Peek().Kind != token.KwFn {
		t.Fatalf("peek should see fn")
	}
	if lx.Next().Kind != token.KwFn {
		t.Fatalf("next should return peeked fn")
	}
	if lx.Next().Text != "main" {
		t.Fatalf("expected main")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}

func TestStringLiterals(t *testing.T) {
	lx, bag := makeTestLexer("\"Hello, world!\" \"multi\nline\"")
	a, b := lx.Next(), lx.Next()
	if a.Kind != token.StringLit || a.StringValue() != "Hello, world!" {
		t.Fatalf("first literal: %+v", a)
	}
	if b.Kind != token.StringLit || b.StringValue() != "multi\nline" {
		t.Fatalf("second literal: %+v", b)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unterminated", `"abc`, diag.LexUnterminatedString},
		{"escape", `"a\"b"`, diag.LexBadEscape},
		{"unknown char", "fn #", diag.LexUnknownChar},
		{"lone minus", "- >", diag.LexUnknownChar},
		{"unicode", "fn ж", diag.LexUnknownChar},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.input)
			toks := lx.All()
			if !bag.HasErrors() {
				t.Fatalf("expected an error for %q", tc.input)
			}
			if got := bag.Items()[0].Code; got != tc.code {
				t.Fatalf("code = %s, want %s", got.ID(), tc.code.ID())
			}
			found := false
			for _, tok := range toks {
				if tok.Kind == token.Invalid {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected an Invalid token in %v", kinds(toks))
			}
		})
	}
}
