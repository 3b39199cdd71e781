package multiplier

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"

	"github.com/agbru/limbcalc/internal/field"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/simfloat"
)

// Multiplier is a single multiplication strategy.
type Multiplier interface {
	// Name returns the registry key of the strategy.
	Name() string
	// Multiply returns the product of a and b in the strategy's suite.
	// Operands must already be normalized with [Suite.Operand].
	Multiply(a, b uint32) uint32
}

// Func adapts a plain function to the Multiplier interface.
type Func struct {
	name string
	fn   func(a, b uint32) uint32
}

// New wraps fn as a Multiplier called name.
func New(name string, fn func(a, b uint32) uint32) *Func {
	return &Func{name: name, fn: fn}
}

// Name returns the strategy name.
func (f *Func) Name() string { return f.name }

// Multiply calls the wrapped function.
func (f *Func) Multiply(a, b uint32) uint32 { return f.fn(a, b) }

// Suite names a family of strategies computing the same product.
type Suite string

const (
	// SuiteU32 multiplies modulo 2^32.
	SuiteU32 Suite = "u32"
	// SuiteFP21 multiplies in the prime field of order 2^21 - 9.
	SuiteFP21 Suite = "fp21"
)

// Suites lists the known suites.
func Suites() []Suite {
	return []Suite{SuiteFP21, SuiteU32}
}

// ParseSuite validates a suite name.
func ParseSuite(s string) (Suite, error) {
	for _, known := range Suites() {
		if Suite(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown suite %q (accepted values: %s)", s, SuiteList())
}

// SuiteList joins the known suite names for usage and error text.
func SuiteList() string {
	names := make([]string, 0, len(Suites()))
	for _, s := range Suites() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Operand maps an arbitrary 32-bit value into the suite's operand domain.
func (s Suite) Operand(x uint32) uint32 {
	if s == SuiteFP21 {
		return field.FromUint64(uint64(x)).Uint32()
	}
	return x
}

// optionalU32 holds strategies registered by build-tagged files.
var optionalU32 []Multiplier

func u32Multipliers() []Multiplier {
	ms := []Multiplier{
		New("native", func(a, b uint32) uint32 { return a * b }),
		New("limb", limb.Mul),
		New("bits", func(a, b uint32) uint32 {
			_, lo := bits.Mul32(a, b)
			return lo
		}),
		New("float64", simfloat.Multiply),
		New("float32", simfloat.Multiply32),
		New("big", bigMulMod32),
	}
	return append(ms, optionalU32...)
}

func fp21Multipliers() []Multiplier {
	return []Multiplier{
		New("native", func(a, b uint32) uint32 {
			return uint32(uint64(a) * uint64(b) % uint64(field.Modulus))
		}),
		New("pseudo-mersenne", func(a, b uint32) uint32 {
			return field.New(a).Mul(field.New(b)).Uint32()
		}),
		New("float64", func(a, b uint32) uint32 {
			return field.NewFloat(a).Mul(field.NewFloat(b)).Elem().Uint32()
		}),
		New("big", bigMulModP),
	}
}

var (
	mask32  = new(big.Int).SetUint64(1<<32 - 1)
	modulus = new(big.Int).SetUint64(uint64(field.Modulus))
)

func bigMulMod32(a, b uint32) uint32 {
	z := new(big.Int).Mul(new(big.Int).SetUint64(uint64(a)), new(big.Int).SetUint64(uint64(b)))
	return uint32(z.And(z, mask32).Uint64())
}

func bigMulModP(a, b uint32) uint32 {
	z := new(big.Int).Mul(new(big.Int).SetUint64(uint64(a)), new(big.Int).SetUint64(uint64(b)))
	return uint32(z.Mod(z, modulus).Uint64())
}
