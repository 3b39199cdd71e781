package field

import (
	"fmt"
	"math"
)

const (
	modulusF    = float64(Modulus)
	modulusFInv = 1.0 / modulusF
)

// Float is a field element carried in a float64.
type Float float64

// NewFloat returns v as a floating-point field element. It panics if v is
// not below Modulus.
func NewFloat(v uint32) Float {
	return New(v).Float()
}

// Add returns f+o mod p.
func (f Float) Add(o Float) Float {
	s := float64(f) + float64(o)
	if s >= modulusF {
		s -= modulusF
	}
	return Float(s)
}

// Mul returns f*o mod p.
//
// The product is below 2^42 and therefore exact. The quotient estimate q may
// be off by one in either direction, so the remainder is folded into [0, p)
// afterwards.
func (f Float) Mul(o Float) Float {
	a := float64(float64(f) * float64(o))
	q := math.Trunc(float64(a * modulusFInv))
	d := float64(a - float64(q*modulusF))

	switch {
	case d >= modulusF:
		d -= modulusF
	case d < 0:
		d += modulusF
	}
	return Float(d)
}

// Elem converts f back to canonical integer form.
func (f Float) Elem() Elem {
	return Elem(uint32(f))
}

// String renders the residue in decimal.
func (f Float) String() string {
	return fmt.Sprintf("%d", uint32(f))
}
