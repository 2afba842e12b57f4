package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"effectful/internal/source"
)

// goldenLine is one rendered entry of a .diag snapshot.
type goldenLine struct {
	severity string
	code     string
	path     string
	line     uint32
	col      uint32
	msg      string
}

func (g goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", g.severity, g.code, g.path, g.line, g.col, g.msg)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.severity, b.severity),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders diags one per line for snapshot files:
//
//	error SEM3001 main.eff:1:28 undefined symbol "Nope"
//
// Lines are ordered by location, then severity, code and message. Notes
// become "note" lines carrying their parent's code when includeNotes is
// set. Diagnostics whose file is unknown to fs are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []goldenLine
	for i := range diags {
		d := &diags[i]
		if g, ok := goldenAt(fs, d.Primary); ok {
			g.severity, g.code, g.msg = d.Severity.Label(), d.Code.ID(), oneLine(d.Message)
			lines = append(lines, g)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if g, ok := goldenAt(fs, n.Span); ok {
				g.severity, g.code, g.msg = "note", d.Code.ID(), oneLine(n.Msg)
				lines = append(lines, g)
			}
		}
	}
	slices.SortStableFunc(lines, compareGolden)

	out := make([]string, len(lines))
	for i, g := range lines {
		out[i] = g.String()
	}
	return strings.Join(out, "\n")
}

func goldenAt(fs *source.FileSet, span source.Span) (goldenLine, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return goldenLine{}, false
	}
	start, _ := fs.Resolve(span)
	path := filepath.ToSlash(file.Path)
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return goldenLine{path: path, line: start.Line, col: start.Col}, true
}

// oneLine folds every line break into a space.
func oneLine(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
