package parser

import (
	"effectful/internal/ast"
	"effectful/internal/diag"
	"effectful/internal/lexer"
	"effectful/internal/source"
)

// Parse is a convenience wrapper parsing text held in a virtual file.
// The returned module is nil whenever the bag holds errors.
func Parse(text string) (*ast.Module, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.eff", []byte(text))
	bag := diag.NewBag(0)
	return ParseSource(fs.Get(id), bag), bag
}

// ParseSource lexes and parses a file already registered in a FileSet,
// reporting into bag. It returns nil when any error was reported.
func ParseSource(file *source.File, bag *diag.Bag) *ast.Module {
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := ParseFile(file, lx, Options{Reporter: rep})
	if bag.HasErrors() {
		return nil
	}
	return res.Module
}
