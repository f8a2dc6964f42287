package pcg

// Jump moves the generator delta steps forward, or backward when delta is
// negative, in at most 128 multiply-add rounds.
func (g *Generator) Jump(delta int64) {
	g.JumpBy(Uint128FromInt64(delta))
}

// JumpBy advances by delta steps modulo 2^128. Rewinding by k is JumpBy of
// the two's complement of k.
func (g *Generator) JumpBy(delta Uint128) {
	start := g.begin()

	accMul, accInc := advance(delta, Multiplier, g.inc)
	g.state = accMul.Mul(g.state).Add(accInc)
	g.steps += int64(delta.Lo)

	if g.tracing() {
		g.emit(start, Event{Op: OpJump, Delta: delta})
	}
}

// advance composes the affine step x -> mul*x + inc with itself delta times
// and returns the coefficients of the result.
func advance(delta, mul, inc Uint128) (accMul, accInc Uint128) {
	accMul = Uint128{Lo: 1}
	for !delta.IsZero() {
		if delta.Lo&1 != 0 {
			accMul = accMul.Mul(mul)
			accInc = accInc.Mul(mul).Add(inc)
		}
		inc = mul.Add(Uint128{Lo: 1}).Mul(inc)
		mul = mul.Mul(mul)
		delta = delta.Rsh(1)
	}
	return accMul, accInc
}
