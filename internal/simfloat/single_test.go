package simfloat

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestU32x2_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, v := range edgeCases {
		if got := NewU32x2(v).Uint32(); got != v {
			t.Errorf("NewU32x2(%d).Uint32() = %d", v, got)
		}
	}
}

func TestU32x2_EdgeCases(t *testing.T) {
	t.Parallel()
	for _, a := range edgeCases {
		for _, b := range edgeCases {
			if got, want := Multiply32(a, b), a*b; got != want {
				t.Errorf("Multiply32(%d, %d) = %d, want %d", a, b, got, want)
			}
			if got, want := NewU32x2(a).Add(NewU32x2(b)).Uint32(), a+b; got != want {
				t.Errorf("Add(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestMulWide16(t *testing.T) {
	t.Parallel()
	limbs := []uint32{0, 1, 2, 0xFF, 0x100, 0x7FFF, 0x8000, 0xFFFE, 0xFFFF}
	for _, a := range limbs {
		for _, b := range limbs {
			lo, hi := mulWide16(float32(a), float32(b))
			if got := uint32(hi)<<16 | uint32(lo); got != a*b {
				t.Errorf("mulWide16(%d, %d) = %v:%v, want %d", a, b, hi, lo, a*b)
			}
			if lo < 0 || lo >= limb16 {
				t.Errorf("mulWide16(%d, %d) low limb %v out of range", a, b, lo)
			}
		}
	}
}

func TestU32x2_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10000
	properties := gopter.NewProperties(parameters)

	properties.Property("Multiply32(a, b) == a*b mod 2^32", prop.ForAll(
		func(a, b uint32) bool {
			return Multiply32(a, b) == a*b
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("agrees with the float64 form", prop.ForAll(
		func(a, b uint32) bool {
			return Multiply32(a, b) == Multiply(a, b)
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("limbs stay integral and below 2^16", prop.ForAll(
		func(a, b uint32) bool {
			r := NewU32x2(a).Mul(NewU32x2(b))
			for _, l := range r {
				if l < 0 || l >= limb16 || l != float32(uint32(l)) {
					return false
				}
			}
			return true
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("full 16-bit limb products are exact", prop.ForAll(
		func(a, b uint16) bool {
			lo, hi := mulWide16(float32(a), float32(b))
			return uint32(hi)<<16|uint32(lo) == uint32(a)*uint32(b)
		},
		gen.UInt16(),
		gen.UInt16(),
	))

	properties.TestingRun(t)
}

func FuzzMultiply32(f *testing.F) {
	for _, v := range edgeCases {
		f.Add(v, ^v)
	}
	f.Fuzz(func(t *testing.T, a, b uint32) {
		if got, want := Multiply32(a, b), a*b; got != want {
			t.Fatalf("Multiply32(%d, %d) = %d, want %d", a, b, got, want)
		}
	})
}
