// Package effectful compiles programs of the effectful markup language into
// HTML documents. Programs that declare an effect get a generator script
// plus a small runtime that drives it.
package effectful

import (
	"context"
	"fmt"
	"io"
	"strings"

	"effectful/internal/diag"
	"effectful/internal/diagfmt"
	"effectful/internal/driver"
	"effectful/internal/effects"
	"effectful/internal/source"
	"effectful/internal/symbols"
)

// SourceName is the file name diagnostics use for Compile input.
const SourceName = "input.eff"

// Options tunes CompileContext.
type Options struct {
	// Name replaces SourceName in diagnostics.
	Name string
	// Registry defaults to the built-in effects.
	Registry *effects.Registry
	// Allocator defaults to random identities.
	Allocator      symbols.Allocator
	MaxDiagnostics int
}

// Error is returned when the program has errors. Diagnostics holds every
// problem found; Files resolves their spans.
type Error struct {
	Diagnostics *diag.Bag
	Files       *source.FileSet
}

func (e *Error) Error() string {
	errs := e.Diagnostics.Errors()
	if len(errs) == 0 {
		return "compile failed"
	}
	first := errs[0]
	msg := first.Code.ID() + ": " + first.Message
	if f := e.Files.Get(first.Primary.File); f != nil {
		start, _ := e.Files.Resolve(first.Primary)
		msg = fmt.Sprintf("%s:%d:%d: %s", f.Path, start.Line, start.Col, msg)
	}
	if n := len(errs) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// Format writes every diagnostic with source snippets.
func (e *Error) Format(w io.Writer, color bool) error {
	return diagfmt.Pretty(w, e.Diagnostics, e.Files, diagfmt.PrettyOpts{Color: color, Notes: true})
}

// Golden renders the diagnostics one per line in a stable order.
func (e *Error) Golden() string {
	return diag.FormatGoldenDiagnostics(e.Diagnostics.Items(), e.Files, false)
}

// Compile turns source into an HTML document. On failure the error is an
// *Error and the output is empty.
func Compile(src string) (string, error) {
	return CompileContext(context.Background(), src, Options{})
}

// CompileContext is Compile with explicit options.
func CompileContext(ctx context.Context, src string, opts Options) (string, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = SourceName
	}
	fs := source.NewFileSet()
	res, err := driver.CompileSource(ctx, fs, name, []byte(src), driver.Options{
		MaxDiagnostics: opts.MaxDiagnostics,
		Registry:       opts.Registry,
		Allocator:      opts.Allocator,
	})
	if err != nil {
		return "", err
	}
	if res.Failed() {
		return "", &Error{Diagnostics: res.Bag, Files: fs}
	}
	return res.Output, nil
}
