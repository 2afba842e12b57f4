package diagfmt

import (
	"io"

	"effectful/internal/diag"
	"effectful/internal/source"
)

// Position is a 1-based line and column.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// LocationJSON is a byte range in a file, with resolved positions when
// JSONOpts.Positions is set.
type LocationJSON struct {
	File  string    `json:"file"`
	Start uint32    `json:"start"`
	End   uint32    `json:"end"`
	From  *Position `json:"from,omitempty"`
	To    *Position `json:"to,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Phase    string       `json:"phase,omitempty"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON. Errors and Warnings
// count the whole bag even when Max truncates the list.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Truncated   bool             `json:"truncated,omitempty"`
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(span source.Span) LocationJSON {
	loc := LocationJSON{
		File:  l.opts.Name(l.fs.Get(span.File)),
		Start: span.Start,
		End:   span.End,
	}
	if l.opts.Positions && l.fs.Get(span.File) != nil {
		from, to := l.fs.Resolve(span)
		loc.From = &Position{Line: from.Line, Col: from.Col}
		loc.To = &Position{Line: to.Line, Col: to.Col}
	}
	return loc
}

// BuildDiagnosticsOutput converts bag without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		}
	}
	if opts.Max > 0 && len(items) > opts.Max {
		items, out.Truncated = items[:opts.Max], true
	}

	loc := locator{fs: fs, opts: opts}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Phase:    d.Code.Phase(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		if opts.Notes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: loc.at(n.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return encodeJSON(w, BuildDiagnosticsOutput(bag, fs, opts))
}
