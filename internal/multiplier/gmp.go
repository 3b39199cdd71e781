//go:build gmp

package multiplier

import "github.com/ncw/gmp"

func init() {
	optionalU32 = append(optionalU32, New("gmp", gmpMulMod32))
}

// gmpMulMod32 multiplies through libgmp and keeps the low 32 bits.
func gmpMulMod32(a, b uint32) uint32 {
	x := new(gmp.Int).SetUint64(uint64(a))
	y := new(gmp.Int).SetUint64(uint64(b))
	z := new(gmp.Int).Mul(x, y)
	return uint32(z.Uint64())
}
