package simfloat

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var edgeCases = []uint32{0, 1, 2, 3, 5, 0xFF, 0x7FF, 0xFF00, 0xFFFF, 0x10000, 0xFF0000, 0xFF000000, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF}

func TestMul_EdgeCases(t *testing.T) {
	t.Parallel()
	for _, a := range edgeCases {
		for _, b := range edgeCases {
			if got, want := Multiply(a, b), a*b; got != want {
				t.Errorf("Multiply(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestMul_SeededSweep(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	values := make([]uint32, 512)
	for i := range values {
		values[i] = rng.Uint32()
	}
	for _, a := range values {
		for _, b := range values {
			if got, want := Multiply(a, b), a*b; got != want {
				t.Fatalf("Multiply(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestAdd_EdgeCases(t *testing.T) {
	t.Parallel()
	for _, a := range edgeCases {
		for _, b := range edgeCases {
			got := Add(NewU32(a), NewU32(b)).Uint32()
			if want := a + b; got != want {
				t.Errorf("Add(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestMul_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10000
	properties := gopter.NewProperties(parameters)

	properties.Property("Multiply(a, b) == a*b mod 2^32", prop.ForAll(
		func(a, b uint32) bool {
			return Multiply(a, b) == a*b
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("results stay integral and in range", prop.ForAll(
		func(a, b uint32) bool {
			r := float64(Mul(NewU32(a), NewU32(b)))
			return r >= 0 && r < modulus && r == float64(uint64(r))
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.TestingRun(t)
}

func FuzzMultiply(f *testing.F) {
	for _, v := range edgeCases {
		f.Add(v, v)
	}
	f.Fuzz(func(t *testing.T, a, b uint32) {
		if got, want := Multiply(a, b), a*b; got != want {
			t.Fatalf("Multiply(%d, %d) = %d, want %d", a, b, got, want)
		}
	})
}
