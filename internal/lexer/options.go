package lexer

import (
	"effectful/internal/diag"
	"effectful/internal/source"
)

type Options struct {
	// Reporter receives lexical errors. Nil discards them; scanning goes on
	// either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
