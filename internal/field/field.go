package field

import "fmt"

const (
	// Modulus is the field order p = 2^21 - 9.
	Modulus uint32 = 1<<bits - c

	bits        = 21
	c    uint32 = 9 // 2^21 - p
	mask uint32 = 1<<bits - 1
)

// Elem is a field element in canonical integer form.
type Elem uint32

// New returns v as a field element. It panics if v is not below Modulus.
func New(v uint32) Elem {
	if v >= Modulus {
		panic(fmt.Sprintf("field: value %d out of range [0, %d)", v, Modulus))
	}
	return Elem(v)
}

// FromUint64 reduces an arbitrary integer into the field.
func FromUint64(v uint64) Elem {
	return Elem(v % uint64(Modulus))
}

// Reduce maps x into [0, p) for x < 2^42, which covers the product of any
// two elements.
//
// The high part is folded twice using 2^21 ≡ c. After the second fold the
// value is below 2^21 + 17c, so at most two subtractions of p remain, and
// r >= p is tested as r+c >= 2^21.
func Reduce(x uint64) Elem {
	b := uint32(x>>bits)*c + uint32(x)&mask
	r := (b>>bits)*c + b&mask

	if rp := r + c; rp >= 1<<bits {
		r = rp - 1<<bits
		if rp = r + c; rp >= 1<<bits {
			r = rp - 1<<bits
		}
	}
	return Elem(r)
}

// Add returns e+o mod p.
func (e Elem) Add(o Elem) Elem {
	s := uint32(e) + uint32(o)
	if s >= Modulus {
		s -= Modulus
	}
	return Elem(s)
}

// Mul returns e*o mod p.
func (e Elem) Mul(o Elem) Elem {
	return Reduce(uint64(e) * uint64(o))
}

// Uint32 returns the canonical residue.
func (e Elem) Uint32() uint32 {
	return uint32(e)
}

// Float converts e to its floating-point representation.
func (e Elem) Float() Float {
	return Float(e)
}

// String renders the residue in decimal.
func (e Elem) String() string {
	return fmt.Sprintf("%d", uint32(e))
}
