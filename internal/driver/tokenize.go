package driver

import (
	"effectful/internal/diag"
	"effectful/internal/lexer"
	"effectful/internal/source"
	"effectful/internal/token"
)

type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes file to EOF, collecting lexical diagnostics.
func Tokenize(file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		File:   file,
		Tokens: lx.All(),
		Bag:    bag,
	}
}
