package diag

import (
	"testing"

	"effectful/internal/source"
)

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{SemaUnresolvedSymbol, "SEM3001"},
		{GenMissingBody, "GEN4009"},
		{IOLoadFileError, "IO5001"},
		{IOWriteFileError, "IO5002"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("%d.ID() = %q, want %q", tc.code, got, tc.want)
		}
	}
	if Code(4999).Title() != codeDescription[UnknownCode] {
		t.Fatalf("unknown code should fall back to generic title")
	}
}

func TestCodePhase(t *testing.T) {
	cases := map[Code]string{
		LexBadEscape:         "lex",
		SynTrailingInput:     "syntax",
		SemaUnresolvedSymbol: "resolve",
		GenMissingBody:       "codegen",
		IOWriteFileError:     "io",
		ObsTimings:           "observe",
		UnknownCode:          "",
	}
	for code, want := range cases {
		if got := code.Phase(); got != want {
			t.Errorf("%s.Phase() = %q, want %q", code.ID(), got, want)
		}
	}
}

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, GenUnusedStatement, source.Span{}, "w")) {
		t.Fatalf("first add rejected")
	}
	if b.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected HasWarnings")
	}
	b.Add(NewError(SynUnexpectedToken, source.Span{}, "e"))
	if b.Add(NewError(SynUnexpectedToken, source.Span{}, "dropped")) {
		t.Fatalf("limit not enforced")
	}
	if b.Len() != 2 || !b.HasErrors() || len(b.Errors()) != 1 {
		t.Fatalf("unexpected bag state: %+v", b.Items())
	}
}

func TestBagPromoteWarnings(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, GenUnusedStatement, source.Span{}, "unused"))
	b.Add(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	if b.HasErrors() {
		t.Fatalf("no errors expected before promotion")
	}
	b.PromoteWarnings()
	if !b.HasErrors() || b.Items()[0].Severity != SevError {
		t.Fatalf("warning was not promoted: %+v", b.Items())
	}
	// an error counts as "a warning or worse"
	if !b.HasWarnings() {
		t.Fatalf("HasWarnings must stay true after promotion")
	}
	if got := b.Items()[1].Severity; got != SevInfo {
		t.Fatalf("info must stay info, got %v", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(GenBadArity, source.Span{Start: 10, End: 12}, "late"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "early"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 1, End: 2}, "early"))
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("want 2 after dedup, got %d", len(items))
	}
	if items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rb := ReportError(BagReporter{Bag: bag}, SemaUnresolvedSymbol, source.Span{}, "no such symbol").
		WithNote(source.Span{Start: 3, End: 4}, "here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("want exactly one diagnostic, got %d", bag.Len())
	}
	if notes := bag.Items()[0].Notes; len(notes) != 1 || notes[0].Msg != "here" {
		t.Fatalf("note not attached: %+v", notes)
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("./main.eff", []byte("fn main\n  {"))
	diags := []Diagnostic{
		NewError(SynUnexpectedToken, source.Span{File: id, Start: 10, End: 11}, "unexpected '{'").
			WithNote(source.Span{File: id, Start: 0, End: 2}, "in this function"),
		New(SevWarning, GenUnusedStatement, source.Span{File: id, Start: 3, End: 7}, "multi\nline"),
	}

	got := FormatGoldenDiagnostics(diags, fs, true)
	want := "note SYN2001 main.eff:1:1 in this function\n" +
		"warning GEN4010 main.eff:1:4 multi line\n" +
		"error SYN2001 main.eff:2:3 unexpected '{'"
	if got != want {
		t.Fatalf("golden mismatch:\n%s\nwant:\n%s", got, want)
	}

	if FormatGoldenDiagnostics(nil, fs, false) != "" {
		t.Fatalf("empty input must render empty string")
	}
}
