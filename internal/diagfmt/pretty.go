package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"effectful/internal/diag"
	"effectful/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := &prettyPrinter{w: w, fs: fs, opts: opts}
	p.sevColors = map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan, color.Bold),
	}
	p.caret = color.New(color.FgGreen, color.Bold)
	p.note = color.New(color.FgBlue, color.Bold)
	for _, c := range []*color.Color{p.caret, p.note, p.sevColors[diag.SevError], p.sevColors[diag.SevWarning], p.sevColors[diag.SevInfo]} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range bag.Items() {
		p.diagnostic(d)
		if p.err != nil {
			return p.err
		}
	}
	return p.err
}

type prettyPrinter struct {
	w         io.Writer
	fs        *source.FileSet
	opts      PrettyOpts
	sevColors map[diag.Severity]*color.Color
	caret     *color.Color
	note      *color.Color
	err       error
}

func (p *prettyPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *prettyPrinter) location(sp source.Span) string {
	f := p.fs.Get(sp.File)
	start, _ := p.fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", p.opts.Name(f), start.Line, start.Col)
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	sev := p.sevColors[d.Severity]
	if sev == nil {
		sev = p.sevColors[diag.SevError]
	}
	p.printf("%s: %s %s: %s\n", p.location(d.Primary), sev.Sprint(d.Severity.String()), d.Code.ID(), d.Message)
	p.snippet(d.Primary)
	if !p.opts.Notes {
		return
	}
	for _, n := range d.Notes {
		p.printf("  %s %s: %s\n", p.note.Sprint("note:"), p.location(n.Span), n.Msg)
		p.snippet(n.Span)
	}
}

// snippet prints the first line of sp with a caret underline. Widths are
// measured in terminal cells so wide runes keep the caret aligned.
func (p *prettyPrinter) snippet(sp source.Span) {
	f := p.fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := p.fs.Resolve(sp)
	line := expandTabs(strings.TrimRight(f.Line(start.Line), "\r"))
	pos := min(int(start.Col-1), len(line))

	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col-1), len(line))
	}
	stop = max(stop, pos)

	pad := runewidth.StringWidth(line[:pos])
	width := max(runewidth.StringWidth(line[pos:stop]), 1)

	gutter := fmt.Sprintf("%d", start.Line)
	p.printf(" %s | %s\n", gutter, line)
	p.printf(" %s | %s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
