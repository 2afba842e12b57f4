package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"effectful/internal/project"
)

const (
	helloSrc  = `fn main() -> Html { Html { Body { Paragraph("Hello, world!") } } }`
	helloHTML = `<html><body><p>Hello, world!</p></body></html>`
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	root, finish := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := execute(root, finish, args, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCompileStdin(t *testing.T) {
	res := runCLI(t, helloSrc, "compile", "-")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr=%s", res.code, res.stderr)
	}
	if res.stdout != helloHTML+"\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestCompileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.eff")
	out := filepath.Join(dir, "out", "page.html")
	if err := os.WriteFile(in, []byte(helloSrc), 0o600); err != nil {
		t.Fatal(err)
	}
	res := runCLI(t, "", "compile", in, "-o", out)
	if res.code != 0 {
		t.Fatalf("exit %d, stderr=%s", res.code, res.stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != helloHTML {
		t.Fatalf("output = %q", data)
	}
}

func TestCompileReportsDiagnostics(t *testing.T) {
	res := runCLI(t, `fn main() -> Html { Html { Nope() } }`, "--color", "off", "compile")
	if res.code != 1 {
		t.Fatalf("exit %d", res.code)
	}
	if res.stdout != "" {
		t.Fatalf("no output expected, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "SEM3001") || !strings.Contains(res.stderr, "<stdin>:1:") {
		t.Fatalf("stderr = %s", res.stderr)
	}
	if strings.Contains(res.stderr, "error: ") {
		t.Fatalf("reported failures should not be repeated: %s", res.stderr)
	}
}

func TestCompileJSONDiagnostics(t *testing.T) {
	res := runCLI(t, `fn main( -> Html {}`, "--diag-format", "json", "compile")
	if res.code != 1 {
		t.Fatalf("exit %d", res.code)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(res.stderr), &payload); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, res.stderr)
	}
}

func TestCompileEmit(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"--emit", "ast"}, want: "Module"},
		{args: []string{"--emit", "hir"}, want: "main"},
		{args: []string{"--emit", "callgraph"}, want: "main -> "},
		{args: []string{"--emit", "ast", "--format", "json"}, want: `"type": "Module"`},
		{args: []string{"--emit", "hir", "--format", "yaml"}, want: "items:"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			res := runCLI(t, helloSrc, append([]string{"compile"}, tt.args...)...)
			if res.code != 0 {
				t.Fatalf("exit %d, stderr=%s", res.code, res.stderr)
			}
			if !strings.Contains(res.stdout, tt.want) {
				t.Fatalf("stdout missing %q:\n%s", tt.want, res.stdout)
			}
		})
	}
}

func TestCompileBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"compile", "--emit", "wasm"},
		{"compile", "--format", "xml"},
		{"--color", "sometimes", "compile"},
		{"--trace-level", "loud", "compile"},
	} {
		res := runCLI(t, helloSrc, args...)
		if res.code != 1 || !strings.Contains(res.stderr, "error: ") {
			t.Errorf("%v: exit %d stderr=%q", args, res.code, res.stderr)
		}
	}
}

func TestCompileTimings(t *testing.T) {
	res := runCLI(t, helloSrc, "compile", "--timings")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr=%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stderr, "timings:") || strings.Contains(res.stderr, "OBS6001") {
		t.Fatalf("stderr = %s", res.stderr)
	}
}

func TestParseFormats(t *testing.T) {
	res := runCLI(t, helloSrc, "parse", "--format", "source")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr=%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "fn main()") {
		t.Fatalf("source = %q", res.stdout)
	}

	res = runCLI(t, helloSrc, "parse", "--tokens")
	if res.code != 0 || !strings.Contains(res.stdout, "Paragraph") {
		t.Fatalf("tokens: exit %d stdout=%s", res.code, res.stdout)
	}
}

func TestInitAndBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	res := runCLI(t, "", "init", dir)
	if res.code != 0 {
		t.Fatalf("init exit %d, stderr=%s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, project.ManifestName) {
		t.Fatalf("init stdout = %s", res.stdout)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	res = runCLI(t, "", "build", "--ui", "off", "--timings")
	if res.code != 0 {
		t.Fatalf("build exit %d, stderr=%s", res.code, res.stderr)
	}
	data, err := os.ReadFile(filepath.Join(dir, project.DefaultOutDir, "main.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<html><body><p>Hello, world!</p><script>function* main()") {
		t.Fatalf("output = %s", data)
	}
	if !strings.Contains(res.stdout, "main.eff -> ") || !strings.Contains(res.stderr, "total") {
		t.Fatalf("stdout=%s stderr=%s", res.stdout, res.stderr)
	}
}

func TestBuildExplicitFilesWithFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.eff")
	bad := filepath.Join(dir, "bad.eff")
	if err := os.WriteFile(good, []byte(helloSrc), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`fn main() -> Html {`), 0o600); err != nil {
		t.Fatal(err)
	}
	res := runCLI(t, "", "--color", "off", "build", "--ui", "off", good, bad)
	if res.code != 1 {
		t.Fatalf("exit %d", res.code)
	}
	if !strings.Contains(res.stderr, "1 of 2 file(s) failed") {
		t.Fatalf("stderr = %s", res.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "good.html")); err != nil {
		t.Fatalf("good.html missing: %v", err)
	}
}

func TestVersion(t *testing.T) {
	res := runCLI(t, "", "--color", "off", "version")
	if res.code != 0 || !strings.HasPrefix(res.stdout, "effectful ") {
		t.Fatalf("version: exit %d stdout=%q", res.code, res.stdout)
	}
	res = runCLI(t, "", "version", "--format", "json")
	var payload versionPayload
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil || payload.Tool != "effectful" {
		t.Fatalf("json version = %q (%v)", res.stdout, err)
	}
}
