// Package observ measures how long each compilation phase takes.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Sample is one finished (or still running) phase.
type Sample struct {
	Name    string
	Start   time.Time
	Elapsed time.Duration
	Note    string
}

// Timer collects phase samples in start order. A nil *Timer records
// nothing, so callers never have to check whether timing is on.
// One Timer belongs to one compilation; it is not safe for concurrent use.
type Timer struct {
	samples []Sample
	clock   func() time.Time
}

func NewTimer() *Timer { return &Timer{clock: time.Now} }

// Start opens a sample and returns the function that closes it with a note.
// Calling the returned function more than once keeps the first result.
func (t *Timer) Start(name string) (stop func(note string)) {
	if t == nil {
		return func(string) {}
	}
	i := len(t.samples)
	t.samples = append(t.samples, Sample{Name: name, Start: t.clock()})
	done := false
	return func(note string) {
		if done {
			return
		}
		done = true
		s := &t.samples[i]
		s.Elapsed, s.Note = t.clock().Sub(s.Start), note
	}
}

// Samples returns a copy of what has been recorded.
func (t *Timer) Samples() []Sample {
	if t == nil {
		return nil
	}
	return append([]Sample(nil), t.samples...)
}

func (t *Timer) Total() time.Duration {
	var sum time.Duration
	for _, s := range t.Samples() {
		sum += s.Elapsed
	}
	return sum
}

// Summary renders the samples as an aligned plain-text table.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, s := range t.Samples() {
		line := fmt.Sprintf("  %-20s %7.2f ms", s.Name, millis(s.Elapsed))
		if s.Note != "" {
			line += "  // " + s.Note
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", millis(t.Total()))
	return b.String()
}

// PhaseReport is the serialized form of a sample.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the payload carried by the timings diagnostic.
type Report struct {
	Kind    string        `json:"kind"`
	Path    string        `json:"path,omitempty"`
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the timer for path.
func (t *Timer) Report(path string) Report {
	r := Report{Kind: "pipeline", Path: path, TotalMS: millis(t.Total()), Phases: []PhaseReport{}}
	for _, s := range t.Samples() {
		r.Phases = append(r.Phases, PhaseReport{Name: s.Name, DurationMS: millis(s.Elapsed), Note: s.Note})
	}
	return r
}

func millis(d time.Duration) float64 { return d.Seconds() * 1e3 }
