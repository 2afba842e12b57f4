package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"effectful/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("build", files, nil).(*progressModel)
}

func TestApplyEventUpdatesRows(t *testing.T) {
	m := newTestModel("a.eff", "b.eff")
	m.applyEvent(buildpipeline.Event{File: "a.eff", Stage: buildpipeline.StageLower, Status: buildpipeline.StatusWorking})
	m.applyEvent(buildpipeline.Event{File: "b.eff", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: errors.New("no such file")})
	m.applyEvent(buildpipeline.Event{File: "unknown.eff", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})

	if got := m.rows[0].label(); got != "lowering" {
		t.Errorf("a.eff label = %q", got)
	}
	if got := m.rows[1]; got.label() != "error" || got.err != "no such file" {
		t.Errorf("b.eff row = %+v", got)
	}
	if got, want := m.percent(), (0.45+1.0)/2; got != want {
		t.Errorf("percent = %v, want %v", got, want)
	}
	if finished, failed := m.counts(); finished != 1 || failed != 1 {
		t.Errorf("counts = %d, %d", finished, failed)
	}
}

func TestRowLabels(t *testing.T) {
	tests := []struct {
		row  fileRow
		want string
	}{
		{fileRow{}, "queued"},
		{fileRow{state: rowWorking, stage: buildpipeline.StageParse}, "parsing"},
		{fileRow{state: rowWorking, stage: buildpipeline.StageCodegen}, "generating"},
		{fileRow{state: rowWorking, stage: buildpipeline.StageWrite}, "writing"},
		{fileRow{state: rowDone}, "done"},
		{fileRow{state: rowFailed}, "error"},
	}
	for _, tt := range tests {
		if got := tt.row.label(); got != tt.want {
			t.Errorf("label(%+v) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newTestModel("a.eff", "pages/b.eff", "c.eff")
	m.applyEvent(buildpipeline.Event{File: "a.eff", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone, Elapsed: 12 * time.Millisecond})
	m.applyEvent(buildpipeline.Event{File: "c.eff", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: errors.New("unreadable")})
	m.done = true
	view := m.View()
	for _, want := range []string{"done: build 2/3, 1 failed", "a.eff", "12ms", "pages/b.eff", "queued", "unreadable"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if newTestModel().View() != "" {
		t.Errorf("empty model should render nothing")
	}
}

func TestUpdateCtrlCInterrupts(t *testing.T) {
	m := newTestModel("a.eff")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.interrupted || cmd == nil {
		t.Fatalf("interrupted=%v cmd=%v", m.interrupted, cmd)
	}
}

func TestUpdateDone(t *testing.T) {
	m := newTestModel("a.eff")
	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatalf("done=%v", m.done)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
	}{
		{"short", 10},
		{"abcdefghij", 8},
		{"abcdef", 3},
		{"日本語のファイル", 9},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if w := runewidth.StringWidth(got); w > tt.width {
			t.Errorf("truncate(%q, %d) = %q has width %d", tt.in, tt.width, got, w)
		}
		long := runewidth.StringWidth(tt.in) > tt.width
		if long && tt.width > 3 && !strings.HasSuffix(got, "...") {
			t.Errorf("truncate(%q, %d) = %q, want ellipsis", tt.in, tt.width, got)
		}
		if !long && got != tt.in {
			t.Errorf("truncate(%q, %d) = %q, want unchanged", tt.in, tt.width, got)
		}
	}
	if got := truncate("anything", 0); got != "anything" {
		t.Errorf("zero width should keep the value, got %q", got)
	}
}
