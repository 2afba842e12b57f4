package trace

import (
	"fmt"
	"strings"
)

// Level controls how much of the pipeline is traced.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // failed runs only
	LevelPhase        // runs and pipeline phases
	LevelDetail       // adds one span per compiled file
	LevelDebug        // adds node-level points such as emitted diagnostics
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String, in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeRun   Scope = iota + 1 // a whole command: compile or build
	ScopePhase                  // parse, lower, callgraph, codegen, emit
	ScopeFile                   // one source file inside a build
	ScopeNode                   // single diagnostics and AST nodes
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeNode:
		return "node"
	}
	return "unknown"
}

// ShouldEmit reports whether events of scope pass at level l.
// LevelError records nothing through spans; failures surface as points
// with KindError.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePhase
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

// accepts is the filter every tracer applies before recording ev.
func (l Level) accepts(ev *Event) bool {
	switch ev.Kind {
	case KindHeartbeat:
		return l > LevelOff
	case KindError:
		return l >= LevelError
	}
	return l.ShouldEmit(ev.Scope)
}
