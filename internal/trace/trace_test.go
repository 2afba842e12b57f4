package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelOff, LevelError, LevelPhase, LevelDetail, LevelDebug} {
		got, err := ParseLevel(strings.ToUpper(l.String()))
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		level Level
		ev    Event
		want  bool
	}{
		{LevelOff, Event{Kind: KindError, Scope: ScopeRun}, false},
		{LevelError, Event{Kind: KindSpanBegin, Scope: ScopeRun}, false},
		{LevelError, Event{Kind: KindError, Scope: ScopePhase}, true},
		{LevelPhase, Event{Kind: KindSpanBegin, Scope: ScopePhase}, true},
		{LevelPhase, Event{Kind: KindSpanBegin, Scope: ScopeFile}, false},
		{LevelDetail, Event{Kind: KindSpanEnd, Scope: ScopeFile}, true},
		{LevelDetail, Event{Kind: KindPoint, Scope: ScopeNode}, false},
		{LevelDebug, Event{Kind: KindPoint, Scope: ScopeNode}, true},
		{LevelError, Event{Kind: KindHeartbeat, Scope: ScopeRun}, true},
	}
	for _, tt := range tests {
		if got := tt.level.accepts(&tt.ev); got != tt.want {
			t.Errorf("%s accepts %s/%s = %v", tt.level, tt.ev.Kind, tt.ev.Scope, got)
		}
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := Start(ctx, ScopeRun, "build")
	fctx, file := Start(ctx, ScopeFile, "compile", Attr{Key: "file", Value: "a.eff"})
	_, parse := Start(fctx, ScopePhase, "parse")
	parse.Set("tokens", "12").End("")
	file.End("")
	outer.End("ok")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d: %+v", len(events), events)
	}
	if events[1].Name != "parse" || events[1].ParentID != outer.ID() || events[1].Depth != 1 {
		t.Fatalf("parse must attach to the nearest recorded span: %+v", events[1])
	}
	if v, _ := events[2].Attr("tokens"); events[2].Kind != KindSpanEnd || v != "12" {
		t.Fatalf("attr lost: %+v", events[2])
	}
	if events[3].Detail != "ok" || events[3].Seq != 4 {
		t.Fatalf("unexpected last event: %+v", events[3])
	}
	if file.ID() != 0 {
		t.Fatalf("filtered span must not get an id")
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	if Enabled(FromContext(context.Background())) {
		t.Fatalf("empty context must yield Nop")
	}
	ctx, span := Start(context.Background(), ScopeRun, "x")
	if span.ID() != 0 || span.End("") != 0 || Active(ctx) {
		t.Fatalf("nop span must be inert")
	}
}

func TestFailKeptAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	ctx := WithTracer(context.Background(), ring)
	_, span := Start(ctx, ScopePhase, "codegen")
	span.Fail(errors.New("boom"))

	events := ring.Snapshot()
	if len(events) != 1 || events[0].Kind != KindError || events[0].Detail != "boom" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatNDJSON))
	_, span := Start(ctx, ScopePhase, "codegen")
	span.Set("scripts", "2").End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Name != "codegen" || ev.Scope != "phase" || ev.Detail != "done" || ev.Attrs["scripts"] != "2" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelDebug, FormatText))
	ctx, span := Start(ctx, ScopeRun, "compile")
	Point(ctx, ScopeNode, "diag", "SEM3001", Attr{Key: "at", Value: "1:28"})
	span.End("")
	out := buf.String()
	if !strings.Contains(out, "  • diag (SEM3001) {at=1:28}\n") {
		t.Fatalf("unexpected text %q", out)
	}
}

func TestRingWrapsAndDumpsOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeRing, RingSize: 2, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := WithTracer(context.Background(), tr)
	for _, name := range []string{"a", "b", "c"} {
		Point(ctx, ScopeNode, name, "")
	}
	ring := tr.(*RingTracer)
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected ring contents %+v", events)
	}
	if buf.Len() != 0 {
		t.Fatalf("ring must not write before Close")
	}
	if err := tr.Close(); err != nil || strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump %q (%v)", buf.String(), err)
	}
}

func TestNewSelectsMode(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || Enabled(tr) {
		t.Fatalf("off level must give Nop")
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, span := Start(WithTracer(context.Background(), tr), ScopeRun, "x")
	span.End("")
	if buf.Len() == 0 {
		t.Fatalf("stream half of ModeBoth wrote nothing")
	}
	ring, ok := tr.(*MultiTracer).Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring half of ModeBoth missing events")
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Fatalf("expected mode error")
	}
	if formatForPath("out.jsonl") != FormatNDJSON || formatForPath("-") != FormatText {
		t.Fatalf("format auto-detection")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	events := ring.Snapshot()
	if len(events) == 0 || events[0].Kind != KindHeartbeat || events[0].Detail != "#1" {
		t.Fatalf("no heartbeat recorded: %+v", events)
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("disabled tracer must not start a heartbeat")
	}
}
