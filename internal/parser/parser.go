package parser

import (
	"effectful/internal/ast"
	"effectful/internal/diag"
	"effectful/internal/lexer"
	"effectful/internal/source"
	"effectful/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result holds the parsed module; Module is nil when parsing failed.
type Result struct {
	Module *ast.Module
	File   source.FileID
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     source.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	failed   bool
}

// ParseFile: входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
// There is no error recovery: the first syntax error stops parsing, after
// which the remaining input is still lexed so every lexical error is reported.
func ParseFile(file *source.File, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		file:     file.ID,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}

	fn, ok := p.parseFunction()
	if ok {
		if eof := p.lx.Peek(); eof.Kind != token.EOF {
			p.unexpected(diag.SynTrailingInput, token.EOF)
			ok = false
		}
	}
	if !ok || p.failed {
		p.drain()
		return Result{File: file.ID}
	}
	return Result{Module: ast.NewModule(fn), File: file.ID}
}

// drain lexes the rest of the input so lexical errors past the failure point surface too.
func (p *Parser) drain() {
	for p.lx.Next().Kind != token.EOF {
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}
