package sweep

import (
	"math/rand/v2"

	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/multiplier"
)

// Pair is one pair of operands.
type Pair struct {
	A, B uint32
}

// edgeOperands are combined pairwise at the head of every operand set.
var edgeOperands = []uint32{
	0, 1, limb.LowMask, limb.LowMask + 1, 0xFFFFF800, 0xFFFFFFFF, limb.DemoA, limb.DemoB,
}

// EdgeCount is the number of fixed pairs that precede the random ones.
var EdgeCount = len(edgeOperands) * len(edgeOperands)

// GenerateOperands returns the edge-case pairs followed by count pseudo-random
// pairs drawn from seed, all normalized into suite's operand domain. The
// sequence depends only on its arguments.
func GenerateOperands(suite multiplier.Suite, seed uint64, count int) []Pair {
	if count < 0 {
		count = 0
	}
	pairs := make([]Pair, 0, EdgeCount+count)
	for _, a := range edgeOperands {
		for _, b := range edgeOperands {
			pairs = append(pairs, Pair{A: suite.Operand(a), B: suite.Operand(b)})
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	for i := 0; i < count; i++ {
		pairs = append(pairs, Pair{A: suite.Operand(rng.Uint32()), B: suite.Operand(rng.Uint32())})
	}
	return pairs
}
