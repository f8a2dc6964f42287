// Package pcg implements a 128-bit permutation congruential generator with
// the XSL-RR output function (PCG 128/64), logarithmic jump-ahead and
// bounded integer and float sampling on top of it.
//
// A Generator is not safe for concurrent use. Give each goroutine its own
// instance, ideally seeded with a distinct sequence so the streams never
// overlap.
package pcg

import (
	"math/bits"

	"github.com/coder/quartz"
)

// Multiplier is the LCG multiplier shared by every Generator.
var Multiplier = Uint128{Hi: 2549297995355413924, Lo: 4865540595714422341}

// Generator is a PCG 128/64 XSL-RR generator.
type Generator struct {
	state Uint128
	inc   Uint128

	// steps counts the state transitions taken; diagnostic only.
	steps int64

	trace    bool
	observer Observer
	clock    quartz.Clock
}

// Option configures a Generator at construction.
type Option func(*Generator)

// WithObserver installs the trace event sink.
func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

// WithTrace sets the initial tracing state.
func WithTrace(enabled bool) Option {
	return func(g *Generator) { g.trace = enabled }
}

// WithClock sets the clock used for trace durations and NewFromClock seeds.
func WithClock(c quartz.Clock) Option {
	return func(g *Generator) { g.clock = c }
}

func newGenerator(opts []Option) *Generator {
	g := &Generator{
		inc:   Uint128{Lo: 1},
		steps: -2,
		clock: quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns a Generator seeded with seed on stream sequence.
func New(seed, sequence uint64, opts ...Option) *Generator {
	return New128(Uint128From64(seed), Uint128From64(sequence), opts...)
}

// New128 is New with full-width seed and sequence values.
func New128(seed, sequence Uint128, opts ...Option) *Generator {
	g := newGenerator(opts)
	g.Seed(seed, sequence)
	return g
}

// NewFromClock seeds from the clock's current Unix time in milliseconds on
// sequence 0.
func NewFromClock(opts ...Option) *Generator {
	g := newGenerator(opts)
	ms := g.clock.Now().UnixMilli()
	g.Seed(Uint128FromInt64(ms), Uint128{})
	return g
}

// Seed mixes seed into the state and selects the stream from sequence. It
// may be called again to reseed in place; the new sequence bits are ORed
// into the existing increment. Returns the resulting state.
func (g *Generator) Seed(seed, sequence Uint128) Uint128 {
	start := g.begin()

	g.inc = g.inc.Or(sequence.Lsh(1).Or(Uint128{Lo: 1}))
	g.step()
	g.state = g.state.Add(seed)
	g.step()

	if g.tracing() {
		g.emit(start, Event{Op: OpSeed})
	}
	return g.state
}

// step advances the LCG by one transition and returns the new state.
func (g *Generator) step() Uint128 {
	start := g.begin()

	g.state = Multiplier.Mul(g.state).Add(g.inc)
	g.steps++

	if g.tracing() {
		g.emit(start, Event{Op: OpStep})
	}
	return g.state
}

// Roll advances the generator and returns the next 64-bit output.
func (g *Generator) Roll() uint64 {
	start := g.begin()

	s := g.step()
	v := s.Hi ^ s.Lo
	rot := int(s.Hi >> 58)
	out := bits.RotateLeft64(v, -rot)

	if g.tracing() {
		g.emit(start, Event{Op: OpRoll, Output: out})
	}
	return out
}

// Uint64 is Roll, letting a Generator serve as a math/rand/v2 Source.
func (g *Generator) Uint64() uint64 {
	return g.Roll()
}

// State returns the current 128-bit state.
func (g *Generator) State() Uint128 {
	return g.state
}

// Increment returns the stream increment. It is always odd.
func (g *Generator) Increment() Uint128 {
	return g.inc
}

// Steps returns the diagnostic transition counter. It reads 0 right after
// construction.
func (g *Generator) Steps() int64 {
	return g.steps
}
