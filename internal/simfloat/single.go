package simfloat

import "math"

const (
	limb16    = 65536.0 // 2^16
	limb16Inv = 1.0 / limb16
)

// U32x2 is a 32-bit unsigned integer held as two 16-bit limbs in float32,
// low limb first. A float32 carries 24 significant bits, so no limb product
// fits; each one is recovered exactly with a two-product.
type U32x2 [2]float32

// NewU32x2 splits v into its float32 limbs.
func NewU32x2(v uint32) U32x2 {
	return U32x2{float32(v & 0xFFFF), float32(v >> 16)}
}

// Uint32 recombines the limbs.
func (u U32x2) Uint32() uint32 {
	return uint32(u[1])<<16 | uint32(u[0])
}

// Add returns u+v mod 2^32.
func (u U32x2) Add(v U32x2) U32x2 {
	l0 := u[0] + v[0]
	l1 := u[1] + v[1]
	if l0 >= limb16 {
		l0 -= limb16
		l1++
	}
	if l1 >= limb16 {
		l1 -= limb16
	}
	return U32x2{l0, l1}
}

// Mul returns u*v mod 2^32.
//
// With u = u1*2^16 + u0, the product is u0*v0 + 2^16*(u0*v1 + u1*v0). The
// high half of u0*v0 carries into the high limb; u1*v1 falls outside the
// result entirely.
func (u U32x2) Mul(v U32x2) U32x2 {
	lo, carry := mulWide16(u[0], v[0])
	c1, _ := mulWide16(u[0], v[1])
	c2, _ := mulWide16(u[1], v[0])

	hi := c1 + c2 + carry // below 3*2^16, exact
	for hi >= limb16 {
		hi -= limb16
	}
	return U32x2{lo, hi}
}

// mulWide16 returns the low and high 16 bits of a*b for a, b < 2^16.
//
// h is a*b rounded to float32 and l its exact error. c = floor(h/2^16) and
// h - c*2^16 are exact, which leaves e = a*b - c*2^16 in (-2^8, 2^16+2^8).
// One correction step moves e into [0, 2^16).
func mulWide16(a, b float32) (lo, hi float32) {
	h := float32(a * b)
	l := fma32(a, b, -h)
	c := float32(math.Floor(float64(h * limb16Inv)))
	e := fma32(-c, limb16, h) + l

	switch {
	case e >= limb16:
		e -= limb16
		c++
	case e < 0:
		e += limb16
		c--
	}
	return e, c
}

// fma32 is a fused multiply-add rounded once to float32. Every operand here
// is an integer below 2^33, so the float64 result is already exact.
func fma32(x, y, z float32) float32 {
	return float32(math.FMA(float64(x), float64(y), float64(z)))
}

// Multiply32 is the integer-in, integer-out form of [U32x2.Mul].
func Multiply32(a, b uint32) uint32 {
	return NewU32x2(a).Mul(NewU32x2(b)).Uint32()
}
