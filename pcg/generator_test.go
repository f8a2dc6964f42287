package pcg

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference is a straightforward math/big model of the generator used to
// cross-check the two-limb implementation.
type reference struct {
	state, inc *big.Int
}

var bigMultiplier = Multiplier.Big()

func newReference(seed, sequence *big.Int) *reference {
	r := &reference{state: new(big.Int), inc: big.NewInt(1)}
	seq := new(big.Int).Lsh(sequence, 1)
	seq.Or(seq, big.NewInt(1))
	r.inc.Or(r.inc, bigMod(seq))
	r.step()
	r.state = bigMod(r.state.Add(r.state, seed))
	r.step()
	return r
}

func (r *reference) step() {
	s := new(big.Int).Mul(bigMultiplier, r.state)
	r.state = bigMod(s.Add(s, r.inc))
}

func (r *reference) roll() uint64 {
	r.step()
	hi := new(big.Int).Rsh(r.state, 64).Uint64()
	lo := new(big.Int).And(r.state, mask64).Uint64()
	rot := uint(new(big.Int).Rsh(r.state, 122).Uint64())
	v := hi ^ lo
	return v>>rot | v<<((-rot)&63)
}

// seed 42 on stream 54; matches the pcg64 reference output published with
// the PCG C library samples.
var conformance = []uint64{
	0x86b1da1d72062b68,
	0x1304aa46c9853d39,
	0xa3670e9e0dd50358,
	0xf9090e529a7dae00,
	0xc85b9fd837996f2c,
	0x606121f8e3919196,
}

func TestConformanceVector(t *testing.T) {
	g := New(42, 54)

	assert.Equal(t, Uint128{Hi: 0xde2bce05be013be3, Lo: 0xd3f6c45a41e54320}, g.State())
	assert.Equal(t, Uint128{Lo: 0x6d}, g.Increment())
	assert.Equal(t, int64(0), g.Steps())

	for i, want := range conformance {
		assert.Equalf(t, want, g.Roll(), "output %d", i)
	}
	assert.Equal(t, int64(len(conformance)), g.Steps())
}

func TestMatchesBigReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 20; i++ {
		seed, seq := randUint128(rng), randUint128(rng)
		g := New128(seed, seq)
		ref := newReference(seed.Big(), seq.Big())

		for j := 0; j < 200; j++ {
			require.Equalf(t, ref.roll(), g.Roll(), "seed %s seq %s output %d", seed, seq, j)
		}
		require.Equal(t, ref.state.String(), g.State().String())
	}
}

func TestDeterminism(t *testing.T) {
	a := New(123456789, 11)
	b := New(123456789, 11)

	for i := 0; i < 10000; i++ {
		require.Equal(t, a.Roll(), b.Roll(), "diverged at output %d", i)
	}
}

func TestStreamIndependence(t *testing.T) {
	a := New(42, 1)
	b := New(42, 2)

	same := 0
	for i := 0; i < 1000; i++ {
		if a.Roll() == b.Roll() {
			same++
		}
	}
	assert.Zero(t, same, "streams with different sequences must not coincide")
}

func TestIncrementAlwaysOdd(t *testing.T) {
	for _, seq := range []uint64{0, 1, 2, 54, 1 << 63, ^uint64(0)} {
		g := New(1, seq)
		assert.Equal(t, uint64(1), g.Increment().Lo&1, "sequence %d", seq)
	}
}

func TestReseedContinuesFromCurrentState(t *testing.T) {
	g := New(42, 54)
	ref := newReference(big.NewInt(42), big.NewInt(54))

	g.Roll()
	ref.roll()

	g.Seed(Uint128From64(9), Uint128From64(3))

	seq := big.NewInt(3<<1 | 1)
	ref.inc.Or(ref.inc, seq)
	ref.step()
	ref.state = bigMod(ref.state.Add(ref.state, big.NewInt(9)))
	ref.step()

	assert.Equal(t, ref.state.String(), g.State().String())
	assert.Equal(t, ref.inc.String(), g.Increment().String())
	assert.Equal(t, ref.roll(), g.Roll())
}

func TestUint64IsRoll(t *testing.T) {
	a := New(5, 5)
	b := New(5, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Roll(), b.Uint64())
	}
}
