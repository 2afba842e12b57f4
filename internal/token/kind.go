package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwEff represents the 'eff' keyword.
	KwEff // eff

	// StringLit represents a double-quoted string literal.
	StringLit

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Semicolon // ;
	Arrow     // ->
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "end of input",
	Ident:     "identifier",
	KwFn:      "'fn'",
	KwEff:     "'eff'",
	StringLit: "string literal",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Comma:     "','",
	Semicolon: "';'",
	Arrow:     "'->'",
}

// String returns the human readable name used in "expected ..." diagnostics.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
