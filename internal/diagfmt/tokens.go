package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"effectful/internal/source"
	"effectful/internal/token"
)

// TokenOutput is one lexed token; Leading lists its trivia kinds.
type TokenOutput struct {
	Kind    string   `json:"kind" msgpack:"kind" yaml:"kind"`
	Text    string   `json:"text,omitempty" msgpack:"text,omitempty" yaml:"text,omitempty"`
	Start   uint32   `json:"start" msgpack:"start" yaml:"start"`
	End     uint32   `json:"end" msgpack:"end" yaml:"end"`
	Leading []string `json:"leading,omitempty" msgpack:"leading,omitempty" yaml:"leading,omitempty"`
}

// BuildTokenOutput converts toks up to and including the first EOF.
func BuildTokenOutput(toks []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(toks))
	for _, tok := range toks {
		t := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Start: tok.Span.Start, End: tok.Span.End}
		for _, tr := range tok.Leading {
			t.Leading = append(t.Leading, tr.Kind.String())
		}
		out = append(out, t)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokens dumps toks as a numbered listing or in an encoded form.
// The listing resolves spans through fs, so every token must come from it.
func FormatTokens(w io.Writer, toks []token.Token, fs *source.FileSet, f Format) error {
	out := BuildTokenOutput(toks)
	switch f {
	case FormatJSON:
		return encodeJSON(w, out)
	case FormatMsgpack:
		return encodeMsgpack(w, out)
	case FormatYAML:
		return encodeYAML(w, out)
	}

	bw := bufio.NewWriter(w)
	for i, t := range out {
		from, to := fs.Resolve(toks[i].Span)
		line := fmt.Sprintf("%3d: %-15s", i+1, t.Kind)
		if t.Text != "" {
			line += fmt.Sprintf(" %q", t.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", from.Line, from.Col, to.Line, to.Col)
		if len(t.Leading) > 0 {
			line += " (leading: " + strings.Join(t.Leading, ", ") + ")"
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
