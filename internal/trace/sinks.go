package trace

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// gate holds the level filter and sequence counter shared by all sinks.
type gate struct {
	level Level
	seq   atomic.Uint64
}

func (g *gate) Level() Level { return g.level }

// admit filters ev and stamps it with the next sequence number.
func (g *gate) admit(ev *Event) bool {
	if !g.level.accepts(ev) {
		return false
	}
	ev.Seq = g.seq.Add(1)
	return true
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }

// Nop discards everything.
var Nop Tracer = nopTracer{}

// StreamTracer writes each event to w as soon as it is emitted.
type StreamTracer struct {
	gate
	mu     sync.Mutex
	w      io.Writer
	format Format
	epoch  time.Time
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{gate: gate{level: level}, w: w, format: format, epoch: time.Now()}
}

func (t *StreamTracer) Emit(ev *Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.admit(ev) {
		return
	}
	// trace output never fails a compile
	_, _ = t.w.Write(FormatEvent(ev, t.format, t.epoch))
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer unless it is stdout or stderr.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok && !isStdStream(t.w) {
		return c.Close()
	}
	return nil
}

// RingTracer keeps the most recent events in a fixed-size buffer.
type RingTracer struct {
	gate
	mu     sync.Mutex
	events []Event
	next   int
	filled bool

	out    io.Writer // written on Close when set
	format Format
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{gate: gate{level: level}, events: make([]Event, capacity)}
}

func (t *RingTracer) dumpTo(w io.Writer, format Format) {
	t.out, t.format = w, format
}

func (t *RingTracer) Emit(ev *Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.admit(ev) {
		return
	}
	t.events[t.next] = *ev
	t.next++
	if t.next == len(t.events) {
		t.next, t.filled = 0, true
	}
}

// Snapshot returns the buffered events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.filled {
		return append([]Event(nil), t.events[:t.next]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dump writes the buffered events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format, time.Time{})); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

// Close dumps the buffer to the configured output, if any.
func (t *RingTracer) Close() error {
	if t.out == nil {
		return nil
	}
	err := t.Dump(t.out, t.format)
	if c, ok := t.out.(io.Closer); ok && !isStdStream(t.out) {
		err = errors.Join(err, c.Close())
	}
	return err
}

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	level   Level
	tracers []Tracer
}

func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	return &MultiTracer{level: level, tracers: tracers}
}

func (t *MultiTracer) Level() Level { return t.level }

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		// each sink stamps its own sequence number
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Ring returns the first ring tracer among t's sinks.
func (t *MultiTracer) Ring() (*RingTracer, bool) {
	for _, tr := range t.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r, true
		}
	}
	return nil, false
}
