package pcg

import (
	"fmt"
	"math"
)

// Clip returns a uniformly distributed integer in [min, max]. max must be
// strictly greater than min.
func (g *Generator) Clip(min, max int64) (int64, error) {
	if max <= min {
		return 0, fmt.Errorf("%w: max (%d) must be greater than min (%d)", ErrInvalidRange, max, min)
	}
	start := g.begin()

	// the span is computed mod 2^64; it only wraps to zero for the full
	// int64 domain, where every raw output is already a valid answer
	span := uint64(max) - uint64(min) + 1
	var out int64
	if span == 0 {
		out = int64(g.Roll())
	} else {
		out = int64(uint64(min) + g.bind(span))
	}

	if g.tracing() {
		g.emit(start, Event{Op: OpClip, Int: out, Range: span})
	}
	return out, nil
}

// ClipFloat maps one of Flush, Pull or Yield, picked uniformly by Bind(3),
// onto min plus the scaled span max - min + 1.
func (g *Generator) ClipFloat(min, max float64) (float64, error) {
	if !(max > min) {
		return 0, fmt.Errorf("%w: max (%g) must be greater than min (%g)", ErrInvalidRange, max, min)
	}
	if math.IsInf(min, 0) || math.IsInf(max, 0) {
		return 0, fmt.Errorf("%w: bounds must be finite, got [%g, %g]", ErrInvalidRange, min, max)
	}
	start := g.begin()

	span := max - min + 1
	var u float64
	switch g.bind(3) {
	case 0:
		u = g.Flush()
	case 1:
		u = g.Pull()
	default:
		u = g.Yield()
	}
	out := u*span + min

	if g.tracing() {
		g.emit(start, Event{Op: OpClipFloat, Float: out})
	}
	return out, nil
}
