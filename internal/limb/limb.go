package limb

import "fmt"

const (
	// LowBits is the width of the low limb. The split point is fixed.
	LowBits = 11
	// HighBits is the width of the high limb of a 32-bit operand.
	HighBits = 32 - LowBits
	// LowMask selects the low limb.
	LowMask uint32 = 1<<LowBits - 1
	// HighMask selects a high limb, or a high-limb sum, of a 32-bit result.
	HighMask uint32 = 1<<HighBits - 1
)

// Operands of the reference limb walkthrough.
const (
	DemoA uint32 = 1474822451
	DemoB uint32 = 1275755509
)

// Limbs is the split form of a 32-bit operand.
type Limbs struct {
	Lo uint32 // bits 0..10
	Hi uint32 // bits 11..31
}

// Split cuts x into its low and high limbs.
func Split(x uint32) Limbs {
	return Limbs{Lo: x & LowMask, Hi: x >> LowBits}
}

// Join recombines the limbs. Join(Split(x)) == x for every x.
func (l Limbs) Join() uint32 {
	return l.Hi<<LowBits | l.Lo
}

// String renders the limbs as "hi:lo".
func (l Limbs) String() string {
	return fmt.Sprintf("%d:%d", l.Hi, l.Lo)
}

// Mul returns a*b mod 2^32 computed limb by limb.
//
// Products feeding the high limb may exceed 32 bits. They wrap modulo 2^32,
// which preserves their value modulo 2^21 because 2^21 divides 2^32.
func Mul(a, b uint32) uint32 {
	x, y := Split(a), Split(b)

	ll := x.Lo * y.Lo // at most 22 bits
	res0 := ll & LowMask
	carry := ll >> LowBits

	res1 := (carry + x.Hi*y.Lo + x.Lo*y.Hi + (x.Hi*y.Hi)<<LowBits) & HighMask
	return res1<<LowBits + res0
}
