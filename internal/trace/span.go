package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

type tracerKey struct{}

type spanKey struct{}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer returns a context carrying t.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// parentOf returns the innermost recorded span in ctx.
func parentOf(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Active reports whether ctx carries a recorded span.
func Active(ctx context.Context) bool { return parentOf(ctx) != nil }

// Span is an open begin/end pair. The zero value and nil are inert.
type Span struct {
	tracer   Tracer
	recorded bool // the begin event passed the level filter
	id       uint64
	parent   uint64
	depth    int
	scope    Scope
	name     string
	started  time.Time
	attrs    []Attr
}

// Start opens a span under the innermost span of ctx using the tracer of
// ctx. Spans filtered out by the level do not become parents, so children
// attach to the nearest recorded ancestor.
func Start(ctx context.Context, scope Scope, name string, attrs ...Attr) (context.Context, *Span) {
	t := FromContext(ctx)
	if !Enabled(t) {
		return ctx, &Span{}
	}
	s := &Span{tracer: t, scope: scope, name: name, started: time.Now(), attrs: attrs}
	if p := parentOf(ctx); p != nil {
		s.parent, s.depth = p.id, p.depth+1
	}
	if !t.Level().ShouldEmit(scope) {
		return ctx, s
	}
	s.recorded = true
	s.id = spanIDs.Add(1)
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return context.WithValue(ctx, spanKey{}, s), s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Attrs:    s.attrs,
	}
}

// Set attaches an attribute to the end event.
func (s *Span) Set(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	return s
}

// End closes the span and returns its duration; 0 when tracing is off.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	if s.recorded {
		s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	}
	return now.Sub(s.started)
}

// Fail closes the span and records err as an error event, which is kept
// even at LevelError.
func (s *Span) Fail(err error) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	d := s.End(err.Error())
	s.tracer.Emit(s.event(KindError, time.Now(), err.Error()))
	return d
}

// ID is 0 for spans that were not recorded.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point records an instant event under the innermost span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string, attrs ...Attr) {
	t := FromContext(ctx)
	if !Enabled(t) || !t.Level().ShouldEmit(scope) {
		return
	}
	ev := &Event{Time: time.Now(), Kind: KindPoint, Scope: scope, Name: name, Detail: detail, Attrs: attrs}
	if p := parentOf(ctx); p != nil {
		ev.ParentID, ev.Depth = p.id, p.depth+1
	}
	t.Emit(ev)
}
