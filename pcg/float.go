package pcg

import (
	"math"
	"strconv"
	"strings"
)

// pullBound is the bound used by Pull: every value with up to 19 decimal
// digits.
const pullBound = 10_000_000_000_000_000_000

// belowOne is the largest float64 less than 1.
var belowOne = math.Nextafter(1, 0)

// Flush reads the decimal digits of one raw output, left-padded to 16
// digits, as the fraction 0.<digits>.
func (g *Generator) Flush() float64 {
	start := g.begin()

	v := decimalFraction(g.Roll())

	if g.tracing() {
		g.emit(start, Event{Op: OpFlush, Float: v})
	}
	return v
}

// Pull is Flush over one draw from Bind(10^19) instead of a raw output.
func (g *Generator) Pull() float64 {
	start := g.begin()

	v := decimalFraction(g.bind(pullBound))

	if g.tracing() {
		g.emit(start, Event{Op: OpPull, Float: v})
	}
	return v
}

// Yield splits the decimal digits of one raw output into a head and a tail
// half and sums them as two fixed-point terms. It is cheaper than parsing
// the whole digit string. The range in practice is well under 0.5.
func (g *Generator) Yield() float64 {
	start := g.begin()

	d := strconv.FormatUint(g.Roll(), 10)
	k := len(d) / 2
	half := float64(len(d)) / 2

	head := parseDigits(d[:k]) / (1 << 32)
	tail := parseDigits(d[len(d)-k:]) / ((1 << 32) * math.Pow(10, half-1))
	v := clampUnit(head + tail)

	if g.tracing() {
		g.emit(start, Event{Op: OpYield, Float: v})
	}
	return v
}

func decimalFraction(n uint64) float64 {
	d := strconv.FormatUint(n, 10)
	if len(d) < 16 {
		d = strings.Repeat("0", 16-len(d)) + d
	}
	v, err := strconv.ParseFloat("0."+d, 64)
	if err != nil {
		// unreachable: the input is always a well-formed decimal
		panic(err)
	}
	return clampUnit(v)
}

func parseDigits(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// clampUnit keeps decimal parses that round up to 1 inside [0, 1).
func clampUnit(v float64) float64 {
	if v >= 1 {
		return belowOne
	}
	return v
}
