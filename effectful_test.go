package effectful_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"effectful"
	"effectful/internal/hir"
	"effectful/internal/parser"
	"effectful/internal/symbols"
	"effectful/internal/testkit"
)

const trampoline = `const main_call=main();while(true){const {done,value:eff,}=main_call.next();if(done){break;}if(eff.ty==="__CONSOLE__"){console.log(eff.args[0],);}}`

func overrideSnapshots() bool {
	return os.Getenv("EFF_OVERRIDE_SNAPSHOTS") != ""
}

func TestCompileHelloWorld(t *testing.T) {
	got, err := effectful.Compile(`fn main() -> Html { Html { Body { Paragraph("Hello, world!") } } }`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if want := "<html><body><p>Hello, world!</p></body></html>"; got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestCompileConsole(t *testing.T) {
	got, err := effectful.Compile(`fn main() -> Html eff Console {
    log("Hello");
    log("World");
    Html { Body { Paragraph("Hello, world!") } }
}`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := `<html><body><p>Hello, world!</p><script>function* main(){yield {ty:"__CONSOLE__",args:["Hello",],};yield {ty:"__CONSOLE__",args:["World",],};}</script><script>` +
		trampoline + `</script></body></html>`
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	if n := strings.Count(got, "<script>"); n != 2 {
		t.Fatalf("scripts = %d, want 2", n)
	}
}

func TestScriptStringCannotCloseElement(t *testing.T) {
	got, err := effectful.Compile(`fn main() -> Html eff Console { log("</script>"); Html { Body } }`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(got, `args:["<\/script>",]`) {
		t.Fatalf("literal not escaped: %q", got)
	}
	if n := strings.Count(got, "</script>"); n != 2 {
		t.Fatalf("closing tags = %d, want 2 in %q", n, got)
	}
}

// Sources are normalized to LF before lexing, so a CRLF inside a string
// literal reaches the document as LF. A lone CR is kept.
func TestLineEndingsInsideLiterals(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"fn main() -> Html { Html { Body { Paragraph(\"h\u00e9llo\r\nx\") } } }", "<html><body><p>h\u00e9llo\nx</p></body></html>"},
		{"fn main() -> Html { Html { Body { Paragraph(\"a\rb\") } } }", "<html><body><p>a\rb</p></body></html>"},
	}
	for _, tt := range tests {
		got, err := effectful.Compile(tt.src)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.src, err)
		}
		if got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestGoldenOutputs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.eff"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden inputs")
	}
	for _, in := range files {
		name := strings.TrimSuffix(filepath.Base(in), ".eff")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := effectful.Compile(string(src))
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			goldenPath := strings.TrimSuffix(in, ".eff") + ".html"
			if overrideSnapshots() {
				if err := os.WriteFile(goldenPath, []byte(got), 0o600); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("read golden (set EFF_OVERRIDE_SNAPSHOTS=1 to create): %v", err)
			}
			if got != string(want) {
				t.Fatalf("output mismatch\ngot  %q\nwant %q", got, want)
			}
		})
	}
}

func TestGoldenDiagnostics(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "errors", "*.eff"))
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range files {
		base := filepath.Base(in)
		t.Run(strings.TrimSuffix(base, ".eff"), func(t *testing.T) {
			src, err := os.ReadFile(in)
			if err != nil {
				t.Fatal(err)
			}
			out, err := effectful.CompileContext(t.Context(), string(src), effectful.Options{Name: base})
			var cerr *effectful.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("want *effectful.Error, got %v", err)
			}
			if out != "" {
				t.Fatalf("failed compile returned output %q", out)
			}
			got := cerr.Golden()
			goldenPath := strings.TrimSuffix(in, ".eff") + ".diag"
			if overrideSnapshots() {
				if err := os.WriteFile(goldenPath, []byte(got), 0o600); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("read golden (set EFF_OVERRIDE_SNAPSHOTS=1 to create): %v", err)
			}
			if got != string(want) {
				t.Fatalf("diagnostics mismatch\ngot  %s\nwant %s", got, want)
			}
		})
	}
}

func TestMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"garbage", "}}}"},
		{"unclosed", `fn main() -> Html { Html {`},
		{"unterminated string", `fn main() -> Html { Paragraph("x) }`},
		{"text tail", `fn main() -> Html { "text" }`},
		{"unknown effect", `fn main() -> Html eff Network { Html { Body } }`},
		{"unknown operation", `fn main() -> Html eff Console { shout("x"); Html { Body } }`},
		{"no body for scripts", `fn main() -> Html eff Console { log("x"); Html { Paragraph("y") } }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := effectful.Compile(tt.src)
			if out != "" {
				t.Fatalf("output = %q, want none", out)
			}
			var cerr *effectful.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("err = %v, want *effectful.Error", err)
			}
			if len(cerr.Diagnostics.Errors()) == 0 {
				t.Fatal("no error diagnostics")
			}
			if !strings.Contains(cerr.Error(), effectful.SourceName+":") {
				t.Fatalf("Error() = %q, want a location", cerr.Error())
			}
			var b strings.Builder
			if err := cerr.Format(&b, false); err != nil || b.Len() == 0 {
				t.Fatalf("Format: %v %q", err, b.String())
			}
		})
	}
}

func TestOutputIsIdempotent(t *testing.T) {
	src := `fn main() -> Html eff Console { log("a"); Html { Body { Paragraph("b") } } }`
	first, err := effectful.Compile(src)
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		again, err := effectful.Compile(src)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("output changed between runs:\n%q\n%q", first, again)
		}
	}
}

func TestNoIDCollisionsAcrossModules(t *testing.T) {
	const modules = 200
	prelude := make(map[symbols.ID]string)
	for _, e := range symbols.Prelude() {
		prelude[e.ID] = e.Name
	}
	declared := make(map[symbols.ID]int)
	for i := range modules {
		mod, bag := parser.Parse(`fn main() -> Html { Html { Body } }`)
		if bag.HasErrors() {
			t.Fatalf("parse: %v", bag.Items())
		}
		m, err := hir.Lower(mod, hir.Options{})
		if err != nil {
			t.Fatalf("lower: %v", err)
		}
		if err := testkit.CheckIDInvariants(m); err != nil {
			t.Fatal(err)
		}
		if name, ok := prelude[m.Main]; ok {
			t.Fatalf("module %d: main collides with prelude %s", i, name)
		}
		if prev, ok := declared[m.Main]; ok {
			t.Fatalf("module %d reused identity %s from module %d", i, m.Main, prev)
		}
		declared[m.Main] = i
	}
}
