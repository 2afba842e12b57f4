// Package trace is the logging layer of the effectful compiler: leveled,
// scoped spans written to a stream, kept in a ring buffer, or both.
//
//	effectful build --trace=build.ndjson --trace-level=detail
//
// Levels map onto scopes. LevelPhase records ScopeRun and ScopePhase,
// LevelDetail adds one ScopeFile span per compiled file and LevelDebug adds
// ScopeNode points (one per diagnostic). LevelError records only failures.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
//
// Ring mode keeps the last N events and writes them when the tracer is
// closed, which keeps long builds cheap to trace.
package trace
