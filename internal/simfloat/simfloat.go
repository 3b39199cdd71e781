// Package simfloat simulates 32-bit unsigned integer arithmetic on float64
// values, for targets where floating-point multiply-add is fast and wide
// integer multiplication is not.
//
// A [U32] always holds an integral value in [0, 2^32) in one float64. A
// [U32x2] holds the same range as two 16-bit limbs in float32. Products are
// formed with the two-product technique: the rounded product plus its exact
// error term recovered with a fused multiply-add.
package simfloat

import "math"

const (
	modulus    = 4294967296.0 // 2^32
	modulusInv = 1.0 / modulus
)

// U32 is a 32-bit unsigned integer carried in a float64.
type U32 float64

// NewU32 converts v into its float form. The conversion is exact.
func NewU32(v uint32) U32 {
	return U32(v)
}

// Uint32 converts u back to an integer.
func (u U32) Uint32() uint32 {
	return uint32(u)
}

// Add returns a+b mod 2^32.
func Add(a, b U32) U32 {
	s := float64(a) + float64(b)
	if s >= modulus {
		s -= modulus
	}
	return U32(s)
}

// Mul returns a*b mod 2^32.
//
// h is the rounded product and l its exact rounding error, so h+l == a*b.
// Subtracting c*2^32 from h is exact because both terms are multiples of
// ulp(h), which leaves a small integer e that is folded into [0, 2^32).
func Mul(a, b U32) U32 {
	x, y := float64(a), float64(b)

	// The conversions stop the compiler from fusing the product into a
	// later addition, which would lose the rounding of h.
	h := float64(x * y)
	l := math.FMA(x, y, -h)
	c := math.Floor(float64(h * modulusInv))
	d := math.FMA(-c, modulus, h)
	e := float64(d + l)

	switch {
	case e >= modulus:
		e -= modulus
	case e < 0:
		e += modulus
	}
	return U32(e)
}

// Multiply is the integer-in, integer-out form of [Mul].
func Multiply(a, b uint32) uint32 {
	return Mul(NewU32(a), NewU32(b)).Uint32()
}
