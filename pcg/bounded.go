package pcg

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a bounded operation is asked for a range
// that admits no uniform choice.
var ErrInvalidRange = errors.New("invalid range")

// Bind returns a uniformly distributed value in [0, n). Draws below
// 2^64 mod n are rejected so the final modulo carries no bias. n must be at
// least 2.
func (g *Generator) Bind(n uint64) (uint64, error) {
	if n < 2 {
		return 0, fmt.Errorf("%w: bound must be an integer at least 2, got %d", ErrInvalidRange, n)
	}
	start := g.begin()

	threshold := -n % n
	r := g.Roll()
	for r < threshold {
		r = g.Roll()
	}
	out := r % n

	if g.tracing() {
		g.emit(start, Event{Op: OpBind, Output: out, Range: n})
	}
	return out, nil
}

// bind is Bind for bounds already known to be valid.
func (g *Generator) bind(n uint64) uint64 {
	v, err := g.Bind(n)
	if err != nil {
		panic(err)
	}
	return v
}
