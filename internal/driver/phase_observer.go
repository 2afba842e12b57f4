package driver

import "time"

// PhaseStatus tells a PhaseObserver which edge of a phase it is seeing.
type PhaseStatus uint8

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

func (s PhaseStatus) String() string {
	if s == PhaseEnd {
		return "end"
	}
	return "start"
}

// PhaseEvent is delivered twice per phase. Elapsed and Note are set on
// PhaseEnd only; Note is the same text the timer records ("ids=7").
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Note    string
}

// PhaseObserver is called synchronously from the compiling goroutine.
type PhaseObserver func(PhaseEvent)

func (c *compilation) notify(ev PhaseEvent) {
	if c.opts.Observer != nil {
		c.opts.Observer(ev)
	}
}
