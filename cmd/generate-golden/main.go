// Command generate-golden writes the limb golden file replayed by the limb
// package tests. Every product is checked against math/big before it is
// written.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/agbru/limbcalc/internal/limb"
)

type goldenCase struct {
	A       uint32 `json:"a"`
	B       uint32 `json:"b"`
	Product uint32 `json:"product"`
	Res0    uint32 `json:"res0"`
	Res1    uint32 `json:"res1"`
}

type goldenFile struct {
	Width int          `json:"width"`
	Cases []goldenCase `json:"cases"`
}

var edgeOperands = []uint32{
	0, 1, 2,
	limb.LowMask, limb.LowMask + 1,
	limb.HighMask, limb.HighMask + 1,
	0x7FFFFFFF, 0x80000000,
	0xFFFFF800, 0xFFFFFFFF,
	limb.DemoA, limb.DemoB,
}

var mod32 = new(big.Int).Lsh(big.NewInt(1), 32)

// mulBig is the oracle: a*b mod 2^32 in arbitrary precision.
func mulBig(a, b uint32) uint32 {
	z := new(big.Int).Mul(new(big.Int).SetUint64(uint64(a)), new(big.Int).SetUint64(uint64(b)))
	return uint32(z.Mod(z, mod32).Uint64())
}

func newCase(a, b uint32) (goldenCase, error) {
	want := mulBig(a, b)
	t := limb.NewTrace(a, b, limb.Width32)
	if t.Actual != want {
		return goldenCase{}, fmt.Errorf("limb product of %d * %d = %d, oracle says %d", a, b, t.Actual, want)
	}
	return goldenCase{A: a, B: b, Product: want, Res0: t.Res0, Res1: t.Res1}, nil
}

func buildCases(random int, seed1, seed2 uint64) ([]goldenCase, error) {
	cases := make([]goldenCase, 0, len(edgeOperands)*len(edgeOperands)+random)
	for _, a := range edgeOperands {
		for _, b := range edgeOperands {
			c, err := newCase(a, b)
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		}
	}

	rng := rand.New(rand.NewPCG(seed1, seed2))
	for i := 0; i < random; i++ {
		c, err := newCase(rng.Uint32(), rng.Uint32())
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func writeGolden(path string, cases []goldenCase) error {
	data, err := json.MarshalIndent(goldenFile{Width: int(limb.Width32), Cases: cases}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func main() {
	out := flag.String("o", filepath.Join("internal", "limb", "testdata", "limb_golden.json"), "Output file.")
	random := flag.Int("n", 64, "Number of random cases after the edge cases.")
	seed := flag.Uint64("seed", 1, "Seed of the random cases.")
	flag.Parse()

	cases, err := buildCases(*random, *seed, 2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	if err := writeGolden(*out, cases); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d cases to %s\n", len(cases), *out)
}
