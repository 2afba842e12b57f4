package markup

import (
	"fmt"
	"io"
	"strings"

	"effectful/internal/ecma"
)

// Writer serializes elements. Scripts are delegated to an ecma.Writer bound
// to the same sink, so the two never buffer separately.
type Writer struct {
	w   io.Writer
	n   int
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Written is the total number of bytes written so far, scripts included.
func (w *Writer) Written() int { return w.n }

// WriteElement writes e and returns the bytes this call wrote.
func (w *Writer) WriteElement(e *Element) (int, error) {
	start := w.n
	w.element(e)
	return w.n - start, w.err
}

// String renders e into a string.
func String(e *Element) (string, error) {
	var b strings.Builder
	if _, err := NewWriter(&b).WriteElement(e); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	w.n += n
	if err != nil {
		w.err = fmt.Errorf("markup: write: %w", err)
	}
}

func (w *Writer) element(e *Element) {
	w.raw("<" + e.Name + ">")
	for _, c := range e.Children {
		switch c := c.(type) {
		case *Element:
			w.element(c)
		case Text:
			w.raw(string(c))
		case *Script:
			w.script(c)
		}
	}
	w.raw("</" + e.Name + ">")
}

func (w *Writer) script(s *Script) {
	w.raw("<script>")
	if w.err != nil {
		return
	}
	n, err := ecma.NewWriter(w.w).WriteProgram(s.Program)
	w.n += n
	if err != nil {
		w.err = err
		return
	}
	w.raw("</script>")
}
