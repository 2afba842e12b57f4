package driver

import (
	"fmt"

	"fortio.org/safecast"

	"effectful/internal/ast"
	"effectful/internal/diag"
	"effectful/internal/lexer"
	"effectful/internal/parser"
	"effectful/internal/source"
)

// parseFile parses file into bag; the module is nil on any error.
func parseFile(file *source.File, bag *diag.Bag, maxDiagnostics int) (*ast.Module, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, fmt.Errorf("max diagnostics: %w", err)
	}

	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(file, lx, parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrors,
	})
	if bag.HasErrors() {
		return nil, nil
	}
	return res.Module, nil
}
