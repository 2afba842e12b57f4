package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"effectful/internal/diag"
	"effectful/internal/driver"
)

const (
	helloSrc  = `fn main() -> Html { Html { Body { Paragraph("Hello, world!") } } }`
	helloHTML = `<html><body><p>Hello, world!</p></body></html>`
	brokenSrc = `fn main() -> Html { Html { Nope() } }`
)

func writeSources(t *testing.T, dir string, files map[string]string) []string {
	t.Helper()
	var paths []string
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestBuildWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	paths := writeSources(t, dir, map[string]string{
		"a.eff":       helloSrc,
		"pages/b.eff": helloSrc,
	})
	out := filepath.Join(dir, "out")
	sink := &RecordingSink{}

	res, err := Build(context.Background(), &BuildRequest{
		Files:    paths,
		OutDir:   out,
		BaseDir:  dir,
		Jobs:     2,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Failed() {
		t.Fatalf("unexpected failure: %+v", res.Files)
	}
	for _, rel := range []string{"a.html", "pages/b.html"} {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		if string(data) != helloHTML {
			t.Errorf("%s = %q", rel, data)
		}
	}

	done := 0
	for _, ev := range sink.Events() {
		if ev.Stage == StageWrite && ev.Status == StatusDone {
			done++
		}
	}
	if done != 2 {
		t.Fatalf("write done events = %d, want 2", done)
	}
	for _, st := range []Stage{StageParse, StageLower, StageCodegen, StageWrite} {
		if !res.Timings.Has(st) {
			t.Errorf("missing timing for %s", st)
		}
	}
}

func TestBuildKeepsGoingAfterFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeSources(t, dir, map[string]string{"good.eff": helloSrc})[0]
	bad := writeSources(t, dir, map[string]string{"bad.eff": brokenSrc})[0]
	missing := filepath.Join(dir, "missing.eff")

	res, err := Build(context.Background(), &BuildRequest{
		Files:   []string{good, bad, missing},
		BaseDir: dir,
		Jobs:    1,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !res.Failed() {
		t.Fatalf("expected failure")
	}
	if len(res.Files) != 3 {
		t.Fatalf("files = %d", len(res.Files))
	}

	if res.Files[0].Failed() {
		t.Fatalf("good.eff failed: %v", res.Files[0].Bag.Items())
	}
	if _, err := os.Stat(filepath.Join(dir, "good.html")); err != nil {
		t.Fatalf("good.html not written: %v", err)
	}

	badRes := res.Files[1]
	if !badRes.Failed() || badRes.Bag.Items()[0].Code != diag.SemaUnresolvedSymbol {
		t.Fatalf("bad.eff diagnostics = %v", badRes.Bag.Items())
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.html")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("bad.html should not exist, stat err = %v", err)
	}

	missRes := res.Files[2]
	if missRes.Err == nil || missRes.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("missing.eff result = %+v", missRes)
	}
	if missRes.Display != "missing.eff" {
		t.Fatalf("display = %q", missRes.Display)
	}
}

func TestBuildCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := writeSources(t, dir, map[string]string{"a.eff": helloSrc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, &BuildRequest{Files: paths})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBuildNilRequest(t *testing.T) {
	if _, err := Build(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestPhaseObserverCollapsesPhases(t *testing.T) {
	sink := &RecordingSink{}
	var timings Timings
	obs := newPhaseObserver(sink, "x.eff", &timings)
	for _, name := range []string{"parse", "lower", "callgraph", "codegen", "emit"} {
		obs.OnPhase(driverStart(name))
		obs.OnPhase(driverEnd(name, 2))
	}
	var stages []string
	for _, ev := range sink.Events() {
		stages = append(stages, ev.Stage.String())
	}
	if got := strings.Join(stages, ","); got != "parse,lower,codegen" {
		t.Fatalf("stages = %s", got)
	}
	if timings.Duration(StageLower) != 4 || timings.Duration(StageCodegen) != 4 {
		t.Fatalf("timings lower=%v codegen=%v", timings.Duration(StageLower), timings.Duration(StageCodegen))
	}
}

func TestDisplayAndOutputPaths(t *testing.T) {
	base := filepath.FromSlash("/proj")
	tests := []struct {
		file, outDir    string
		display, output string
	}{
		{file: "/proj/a.eff", display: "a.eff", output: "/proj/a.html"},
		{file: "/proj/pages/b.eff", outDir: "/proj/out", display: "pages/b.eff", output: "/proj/out/pages/b.html"},
		{file: "/elsewhere/c.eff", outDir: "/proj/out", display: "/elsewhere/c.eff", output: "/proj/out/c.html"},
	}
	for _, tt := range tests {
		file := filepath.FromSlash(tt.file)
		got := displayPath(file, base)
		if got != tt.display {
			t.Errorf("displayPath(%q) = %q, want %q", tt.file, got, tt.display)
		}
		out := outputPath(file, got, filepath.FromSlash(tt.outDir))
		if out != filepath.FromSlash(tt.output) {
			t.Errorf("outputPath(%q) = %q, want %q", tt.file, out, tt.output)
		}
	}

	paths, names := displayNames([]string{"/proj/a.eff", "", "/proj/a.eff"}, base)
	if len(paths) != 1 || names[0] != "a.eff" {
		t.Fatalf("displayNames = %v %v", paths, names)
	}
}

func TestTimingsMerge(t *testing.T) {
	var a, b Timings
	a.Set(StageParse, 3)
	b.Add(StageParse, 2)
	b.Add(StageWrite, 5)
	a.Merge(b)
	if a.Duration(StageParse) != 5 || a.Sum(Stages...) != 10 {
		t.Fatalf("merged = %v / %v", a.Duration(StageParse), a.Sum(Stages...))
	}
}

func driverStart(name string) driver.PhaseEvent {
	return driver.PhaseEvent{Name: name, Status: driver.PhaseStart}
}

func driverEnd(name string, elapsed time.Duration) driver.PhaseEvent {
	return driver.PhaseEvent{Name: name, Status: driver.PhaseEnd, Elapsed: elapsed}
}
