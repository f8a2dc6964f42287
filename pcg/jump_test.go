package pcg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpMatchesStepping(t *testing.T) {
	for k := 0; k <= 50; k++ {
		jumped := New(42, 54)
		stepped := New(42, 54)

		jumped.Jump(int64(k))
		for i := 0; i < k; i++ {
			stepped.step()
		}
		require.Equalf(t, stepped.State(), jumped.State(), "k=%d", k)
		require.Equal(t, stepped.Roll(), jumped.Roll())
	}
}

func TestJumpRoundTrip(t *testing.T) {
	deltas := []int64{0, 1, -1, 6, -6, 1000, 1 << 40, -(1 << 50), math.MaxInt64, math.MinInt64 + 1}

	for _, k := range deltas {
		g := New(2024, 7)
		g.Roll()
		before := g.State()

		g.Jump(k)
		if k != 0 {
			assert.NotEqual(t, before, g.State(), "jump %d should move the state", k)
		}
		g.Jump(-k)
		assert.Equalf(t, before, g.State(), "jump %d then %d", k, -k)
	}
}

func TestJumpBackReplaysOutputs(t *testing.T) {
	g := New(42, 54)

	first := make([]uint64, 6)
	for i := range first {
		first[i] = g.Roll()
	}
	g.Jump(-6)
	for i := range first {
		assert.Equal(t, first[i], g.Roll())
	}
	assert.Equal(t, []uint64(conformance), first)
}

func TestJumpByFullWidth(t *testing.T) {
	g := New(1, 1)
	start := g.State()

	// a full period is 2^128 steps, so 2^127 twice comes back to start
	half := Uint128{Hi: 1 << 63}
	g.JumpBy(half)
	assert.NotEqual(t, start, g.State())
	g.JumpBy(half)
	assert.Equal(t, start, g.State())

	// the two's complement of k rewinds k steps
	g.Roll()
	g.Roll()
	g.JumpBy(Uint128From64(2).Neg())
	assert.Equal(t, start, g.State())
}

func TestJumpStepCounter(t *testing.T) {
	g := New(3, 3)
	g.Jump(10)
	assert.Equal(t, int64(10), g.Steps())
	g.Jump(-4)
	assert.Equal(t, int64(6), g.Steps())
}

func TestJumpAfterThousand(t *testing.T) {
	g := New(42, 54)
	g.Jump(1000)
	assert.Equal(t, Uint128{Hi: 0xacc2ca76ecc80dc1, Lo: 0xeeb6c37cbdaad3d8}, g.State())
}
