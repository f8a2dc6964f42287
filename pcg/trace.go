package pcg

import "time"

// Op names the generator operation that produced a trace Event.
type Op string

const (
	OpSeed  Op = "seed"
	OpStep  Op = "step"
	OpJump  Op = "jump"
	OpRoll  Op = "roll"
	OpBind  Op = "bind"
	OpFlush Op = "flush"
	OpPull  Op = "pull"
	OpYield Op = "yield"
	OpClip  Op = "clip"

	OpClipFloat Op = "clip-float"
)

// Event describes one traced operation. Only the fields relevant to Op are
// set: Output for roll and bind, Float for the float samplers and float
// clips, Delta for jump, Range for bind and clip, Int for integer clips.
// Range is 0 for a clip spanning the whole int64 domain.
type Event struct {
	Op       Op
	State    Uint128
	Steps    int64
	Output   uint64
	Int      int64
	Float    float64
	Delta    Uint128
	Range    uint64
	Duration time.Duration
}

// Observer receives trace events from a Generator while tracing is enabled.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// ToggleTrace flips tracing and returns the new setting.
func (g *Generator) ToggleTrace() bool {
	g.trace = !g.trace
	return g.trace
}

// Tracing reports whether trace events are being emitted.
func (g *Generator) Tracing() bool {
	return g.trace
}

// SetObserver replaces the event sink. A nil observer silences tracing
// without changing the toggle.
func (g *Generator) SetObserver(o Observer) {
	g.observer = o
}

func (g *Generator) tracing() bool {
	return g.trace && g.observer != nil
}

// begin returns the start time for a traced operation, or the zero time
// when tracing is off so no clock read happens.
func (g *Generator) begin() time.Time {
	if !g.tracing() {
		return time.Time{}
	}
	return g.clock.Now()
}

func (g *Generator) emit(start time.Time, e Event) {
	e.State = g.state
	e.Steps = g.steps
	e.Duration = g.clock.Since(start)
	g.observer.Observe(e)
}
