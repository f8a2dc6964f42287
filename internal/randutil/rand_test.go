package randutil

import (
	rand "math/rand/v2"
	"testing"

	"github.com/lox/pcg128/pcg"
	"github.com/stretchr/testify/assert"
)

var _ rand.Source = (*pcg.Generator)(nil)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestNearbySeedsDiffer(t *testing.T) {
	a, b := Source(1), Source(2)
	assert.NotEqual(t, a.Increment(), b.Increment())
	assert.NotEqual(t, a.Roll(), b.Roll())
}

func TestNewDrawsFromSource(t *testing.T) {
	r := New(99)
	g := Source(99)
	assert.Equal(t, g.Roll(), r.Uint64())
}

func TestBoundedDraws(t *testing.T) {
	r := New(123)
	for i := 0; i < 1000; i++ {
		assert.Less(t, r.IntN(6), 6)
	}
}
