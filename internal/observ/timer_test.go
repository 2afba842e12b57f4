package observ

import (
	"strings"
	"testing"
	"time"
)

// tick advances one step on every reading.
func tick(step time.Duration) func() time.Time {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(step)
		return at
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.clock = tick(time.Millisecond)

	stop := tm.Start("parse")
	stop("1 item")
	stop("ignored")
	tm.Start("codegen")("")

	r := tm.Report("main.eff")
	if r.Kind != "pipeline" || r.Path != "main.eff" || r.TotalMS != 2 {
		t.Fatalf("unexpected report %+v", r)
	}
	if len(r.Phases) != 2 {
		t.Fatalf("phases %+v", r.Phases)
	}
	if p := r.Phases[0]; p.Name != "parse" || p.Note != "1 item" || p.DurationMS != 1 {
		t.Fatalf("phase 0 = %+v", p)
	}

	s := tm.Summary()
	for _, want := range []string{"parse", "// 1 item", "codegen", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Start("parse")("note")
	if tm.Samples() != nil || tm.Total() != 0 {
		t.Fatalf("nil timer recorded something")
	}
	if r := tm.Report(""); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
}

func TestOpenSampleHasNoDuration(t *testing.T) {
	tm := NewTimer()
	tm.clock = tick(time.Second)
	tm.Start("emit")
	if got := tm.Samples(); len(got) != 1 || got[0].Elapsed != 0 {
		t.Fatalf("samples %+v", got)
	}
}
