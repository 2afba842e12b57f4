package buildpipeline

import (
	"fmt"
	"strings"
	"time"
)

// Stage is a coarse build step as shown to the user. Several driver
// phases map onto one stage.
type Stage uint8

const (
	StageParse   Stage = iota
	StageLower         // name resolution and the call graph
	StageCodegen       // markup generation and serialization
	StageWrite         // writing the .html output
	numStages
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageParse, StageLower, StageCodegen, StageWrite}

var stageNames = [numStages]string{"parse", "lower", "codegen", "write"}

func (s Stage) String() string {
	if s < numStages {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// Status is the state of a file within its current stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return "queued"
}

// Event reports progress for one file. Elapsed is set on StatusDone.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

func (ev Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s/%s", ev.File, ev.Stage, ev.Status)
	if ev.Err != nil {
		fmt.Fprintf(&b, ": %v", ev.Err)
	}
	return b.String()
}

// ProgressSink consumes progress events. Build calls OnEvent from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings accumulates wall time per stage. The zero value is ready to use.
type Timings struct {
	dur  [numStages]time.Duration
	seen [numStages]bool
}

func (t *Timings) Set(stage Stage, d time.Duration) {
	if t == nil || stage >= numStages {
		return
	}
	t.dur[stage], t.seen[stage] = d, true
}

func (t *Timings) Add(stage Stage, d time.Duration) {
	if t == nil || stage >= numStages {
		return
	}
	t.dur[stage] += d
	t.seen[stage] = true
}

// Merge adds every recorded stage of other into t.
func (t *Timings) Merge(other Timings) {
	for i, ok := range other.seen {
		if ok {
			t.Add(Stage(i), other.dur[i])
		}
	}
}

// Has reports whether stage was recorded at all, even with zero time.
func (t Timings) Has(stage Stage) bool {
	return stage < numStages && t.seen[stage]
}

func (t Timings) Duration(stage Stage) time.Duration {
	if stage >= numStages {
		return 0
	}
	return t.dur[stage]
}

// Sum totals the given stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, s := range stages {
		total += t.Duration(s)
	}
	return total
}
