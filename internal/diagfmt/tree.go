package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"effectful/internal/source"
)

// NodeOutput is the serializable shape shared by the AST and HIR dumps.
type NodeOutput struct {
	Type     string       `json:"type" msgpack:"type" yaml:"type"`
	Name     string       `json:"name,omitempty" msgpack:"name,omitempty" yaml:"name,omitempty"`
	ID       string       `json:"id,omitempty" msgpack:"id,omitempty" yaml:"id,omitempty"`
	Value    string       `json:"value,omitempty" msgpack:"value,omitempty" yaml:"value,omitempty"`
	Span     *SpanOutput  `json:"span,omitempty" msgpack:"span,omitempty" yaml:"span,omitempty"`
	Children []NodeOutput `json:"children,omitempty" msgpack:"children,omitempty" yaml:"children,omitempty"`
}

type SpanOutput struct {
	File  source.FileID `json:"file" msgpack:"file" yaml:"file"`
	Start uint32        `json:"start" msgpack:"start" yaml:"start"`
	End   uint32        `json:"end" msgpack:"end" yaml:"end"`
}

func spanOutput(sp source.Span) *SpanOutput {
	return &SpanOutput{File: sp.File, Start: sp.Start, End: sp.End}
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func (n *NodeOutput) label(fs *source.FileSet) string {
	var b strings.Builder
	b.WriteString(n.Type)
	if n.Name != "" {
		b.WriteString(" " + n.Name)
	}
	if n.ID != "" {
		b.WriteString(" #" + n.ID)
	}
	if n.Value != "" {
		fmt.Fprintf(&b, " %q", n.Value)
	}
	if n.Span != nil {
		b.WriteString(" (span: " + formatSpan(source.Span{File: n.Span.File, Start: n.Span.Start, End: n.Span.End}, fs) + ")")
	}
	return b.String()
}

// treeWriter prints nodes with box-drawing connectors:
//
//	Module
//	└─ Function main
//	   ├─ Output
type treeWriter struct {
	w   io.Writer
	fs  *source.FileSet
	err error
}

func (t *treeWriter) line(prefix, connector, label string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, prefix+connector+label+"\n")
}

func (t *treeWriter) node(n *NodeOutput, prefix string, root, last bool) {
	childPrefix := prefix
	switch {
	case root:
		t.line("", "", n.label(t.fs))
	case last:
		t.line(prefix, "└─ ", n.label(t.fs))
		childPrefix += "   "
	default:
		t.line(prefix, "├─ ", n.label(t.fs))
		childPrefix += "│  "
	}
	for i := range n.Children {
		t.node(&n.Children[i], childPrefix, false, i == len(n.Children)-1)
	}
}

func writeTree(w io.Writer, n *NodeOutput, fs *source.FileSet) error {
	t := &treeWriter{w: w, fs: fs}
	t.node(n, "", true, true)
	return t.err
}

func writeNode(w io.Writer, n *NodeOutput, fs *source.FileSet, f Format) error {
	switch f {
	case FormatJSON:
		return encodeJSON(w, n)
	case FormatMsgpack:
		return encodeMsgpack(w, n)
	case FormatYAML:
		return encodeYAML(w, n)
	default:
		return writeTree(w, n, fs)
	}
}
