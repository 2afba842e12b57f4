package token

import (
	"effectful/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a string literal.
func (t Token) IsLiteral() bool { return t.Kind == StringLit }

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case LParen, RParen, LBrace, RBrace, Comma, Semicolon, Arrow:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwEff:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for "found ..." messages.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier \"" + t.Text + "\""
	case StringLit:
		return "string " + t.Text
	}
	return t.Kind.String()
}

// StringValue strips the surrounding quotes of a string literal.
func (t Token) StringValue() string {
	if t.Kind != StringLit || len(t.Text) < 2 {
		return ""
	}
	return t.Text[1 : len(t.Text)-1]
}
