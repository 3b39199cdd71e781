// Package sweep multiplies a batch of operand pairs with one strategy and
// condenses the products into a digest that can be compared across
// strategies.
package sweep

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/parallel"
	"github.com/agbru/limbcalc/internal/progress"
)

// Stride is the number of pairs processed between cancellation checks and
// progress reports.
const Stride = 4096

// Result is the outcome of one sweep.
type Result struct {
	// Name is the strategy that produced the products.
	Name string
	// Products holds one product per input pair, in input order.
	Products []uint32
	// Digest is the xxhash64 of the little-endian products.
	Digest uint64
	// Duration is the wall time of the multiplication phase.
	Duration time.Duration
}

// Count returns the number of products.
func (r Result) Count() int {
	return len(r.Products)
}

// Run multiplies every pair with m using up to workers goroutines.
// It returns ctx.Err() if the context is canceled before all pairs are done.
func Run(ctx context.Context, m multiplier.Multiplier, pairs []Pair, workers int, report progress.ProgressCallback) (Result, error) {
	if report == nil {
		report = func(float64) {}
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(pairs)/Stride+1 {
		workers = len(pairs)/Stride + 1
	}

	products := make([]uint32, len(pairs))
	total := float64(len(pairs))
	var done atomic.Int64
	var ec parallel.ErrorCollector
	var wg sync.WaitGroup

	start := time.Now()
	chunk := (len(pairs) + workers - 1) / workers
	for lo := 0; lo < len(pairs); lo += chunk {
		hi := min(lo+chunk, len(pairs))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i += Stride {
				if err := ctx.Err(); err != nil {
					ec.SetError(err)
					return
				}
				end := min(i+Stride, hi)
				for j := i; j < end; j++ {
					products[j] = m.Multiply(pairs[j].A, pairs[j].B)
				}
				report(float64(done.Add(int64(end-i))) / total)
			}
		}(lo, hi)
	}
	wg.Wait()

	if err := ec.Err(); err != nil {
		return Result{Name: m.Name()}, err
	}
	// Worker reports can interleave; the last one seen must be complete.
	report(1.0)
	return Result{
		Name:     m.Name(),
		Products: products,
		Digest:   Digest(products),
		Duration: time.Since(start),
	}, nil
}

// Digest hashes products in order.
func Digest(products []uint32) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, p := range products {
		binary.LittleEndian.PutUint32(buf[:], p)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// FirstDivergence returns the index of the first pair on which a and b
// disagree, or -1 if they agree on every pair they both cover.
func FirstDivergence(a, b Result) int {
	n := min(len(a.Products), len(b.Products))
	for i := 0; i < n; i++ {
		if a.Products[i] != b.Products[i] {
			return i
		}
	}
	if len(a.Products) != len(b.Products) {
		return n
	}
	return -1
}
