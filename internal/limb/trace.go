package limb

import (
	"fmt"
	"strconv"
)

// Width selects the result width checked by a [Trace].
type Width uint8

const (
	// Width31 reproduces the reference demonstration: the high limb is kept
	// to 20 bits and the product is compared modulo 2^31.
	Width31 Width = 31
	// Width32 is the full contract, a*b mod 2^32.
	Width32 Width = 32
)

// ParseWidth converts a numeric width into a Width.
func ParseWidth(v int) (Width, error) {
	switch Width(v) {
	case Width31, Width32:
		return Width(v), nil
	}
	return 0, fmt.Errorf("unsupported width %d (accepted values: 31, 32)", v)
}

// String returns the width as a decimal number.
func (w Width) String() string {
	return strconv.Itoa(int(w))
}

// HighMask returns the mask applied to the high-limb components and sum.
func (w Width) HighMask() uint32 {
	return 1<<(uint32(w)-LowBits) - 1
}

// ResultMask returns the mask applied to the native product when computing
// the expected value.
func (w Width) ResultMask() uint32 {
	if w >= 32 {
		return ^uint32(0)
	}
	return 1<<uint32(w) - 1
}

// Trace records every intermediate value of one limb multiplication.
type Trace struct {
	Width Width
	A, B  uint32

	ALimbs, BLimbs Limbs

	// C1 is the carry out of the low limb.
	C1 uint32
	// C2 and C3 are the masked cross products hi*lo and lo*hi.
	C2, C3 uint32
	// C4 is the masked hi*hi product shifted into high-limb position.
	C4 uint32

	Res0 uint32 // low limb of the result
	Res1 uint32 // high limb of the result

	Actual   uint32 // Res1<<11 + Res0
	Expected uint32 // native a*b under the width's result mask
}

// NewTrace performs the limb multiplication of a and b at width w and keeps
// every intermediate value.
func NewTrace(a, b uint32, w Width) Trace {
	x, y := Split(a), Split(b)
	mask := w.HighMask()

	t := Trace{Width: w, A: a, B: b, ALimbs: x, BLimbs: y}

	ll := x.Lo * y.Lo
	t.Res0 = ll & LowMask
	t.C1 = ll >> LowBits
	t.C2 = x.Hi * y.Lo & mask
	t.C3 = x.Lo * y.Hi & mask
	t.C4 = (x.Hi * y.Hi & mask) << LowBits

	t.Res1 = (t.C1 + t.C2 + t.C3 + t.C4) & mask
	t.Actual = t.Res1<<LowBits + t.Res0
	t.Expected = a * b & w.ResultMask()
	return t
}

// OK reports whether the recombined product matches the native one.
func (t Trace) OK() bool {
	return t.Actual == t.Expected
}

// Components returns C1..C4 in summation order.
func (t Trace) Components() [4]uint32 {
	return [4]uint32{t.C1, t.C2, t.C3, t.C4}
}
