package pcg

import (
	"fmt"
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer stored as two 64-bit limbs.
// Every operation wraps modulo 2^128.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128From64 widens v.
func Uint128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// Uint128FromInt64 sign-extends v, so negative values become 2^128 + v.
func Uint128FromInt64(v int64) Uint128 {
	u := Uint128{Lo: uint64(v)}
	if v < 0 {
		u.Hi = ^uint64(0)
	}
	return u
}

// Add returns u + v.
func (u Uint128) Add(v Uint128) Uint128 {
	lo, carry := bits.Add64(u.Lo, v.Lo, 0)
	hi, _ := bits.Add64(u.Hi, v.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Mul returns u * v. The cross terms that land above bit 127 are dropped.
func (u Uint128) Mul(v Uint128) Uint128 {
	hi, lo := bits.Mul64(u.Lo, v.Lo)
	hi += u.Hi*v.Lo + u.Lo*v.Hi
	return Uint128{Hi: hi, Lo: lo}
}

// Neg returns the two's complement of u.
func (u Uint128) Neg() Uint128 {
	return Uint128{Hi: ^u.Hi, Lo: ^u.Lo}.Add(Uint128{Lo: 1})
}

// Lsh returns u << n. Shifts of 128 or more yield zero.
func (u Uint128) Lsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Hi: u.Lo << (n - 64)}
	case n == 0:
		return u
	}
	return Uint128{Hi: u.Hi<<n | u.Lo>>(64-n), Lo: u.Lo << n}
}

// Rsh returns u >> n. Shifts of 128 or more yield zero.
func (u Uint128) Rsh(n uint) Uint128 {
	switch {
	case n >= 128:
		return Uint128{}
	case n >= 64:
		return Uint128{Lo: u.Hi >> (n - 64)}
	case n == 0:
		return u
	}
	return Uint128{Hi: u.Hi >> n, Lo: u.Lo>>n | u.Hi<<(64-n)}
}

func (u Uint128) Or(v Uint128) Uint128  { return Uint128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo} }
func (u Uint128) And(v Uint128) Uint128 { return Uint128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo} }
func (u Uint128) Xor(v Uint128) Uint128 { return Uint128{Hi: u.Hi ^ v.Hi, Lo: u.Lo ^ v.Lo} }

// IsZero reports whether u == 0.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// Equal reports whether u == v.
func (u Uint128) Equal(v Uint128) bool {
	return u == v
}

// Bit returns bit i of u (0 is least significant).
func (u Uint128) Bit(i uint) uint {
	if i >= 64 {
		return uint(u.Hi>>(i-64)) & 1
	}
	return uint(u.Lo>>i) & 1
}

// BitLen returns the number of bits needed to represent u.
func (u Uint128) BitLen() int {
	if u.Hi != 0 {
		return 64 + bits.Len64(u.Hi)
	}
	return bits.Len64(u.Lo)
}

// Big converts u to a math/big integer.
func (u Uint128) Big() *big.Int {
	b := new(big.Int).SetUint64(u.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(u.Lo))
}

// Uint128FromBig reduces b modulo 2^128. Negative values wrap.
func Uint128FromBig(b *big.Int) Uint128 {
	m := new(big.Int).And(b, mask128)
	lo := new(big.Int).And(m, mask64).Uint64()
	hi := new(big.Int).Rsh(m, 64).Uint64()
	return Uint128{Hi: hi, Lo: lo}
}

// ParseUint128 parses a decimal or 0x-prefixed hex integer, optionally
// negative, reducing it modulo 2^128.
func ParseUint128(s string) (Uint128, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Uint128{}, fmt.Errorf("invalid 128-bit integer %q", s)
	}
	return Uint128FromBig(b), nil
}

var (
	mask64  = new(big.Int).SetUint64(^uint64(0))
	mask128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// String formats u in decimal.
func (u Uint128) String() string {
	if u.Hi == 0 {
		return fmt.Sprintf("%d", u.Lo)
	}
	return u.Big().String()
}

// Hex formats u as 32 zero-padded hex digits with a 0x prefix.
func (u Uint128) Hex() string {
	return fmt.Sprintf("0x%016x%016x", u.Hi, u.Lo)
}
