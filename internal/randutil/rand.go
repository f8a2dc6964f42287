// Package randutil builds math/rand/v2 generators backed by the 128-bit PCG.
package randutil

import (
	rand "math/rand/v2"

	"github.com/lox/pcg128/pcg"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The seed and the stream selector are both derived from it, so nearby seeds
// land on unrelated streams.
func New(seed int64) *rand.Rand {
	return rand.New(Source(seed))
}

// Source returns the generator behind New. *pcg.Generator already
// satisfies rand.Source through Uint64.
func Source(seed int64) *pcg.Generator {
	u := uint64(seed)
	return pcg.New(mix(u), mix(u+goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
