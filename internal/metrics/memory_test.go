package metrics

import (
	"testing"
	"time"
)

func TestEstimateSweepBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		pairs, multipliers int
		want               uint64
	}{
		{0, 5, 0},
		{-3, 5, 0},
		{100, 0, 800},
		{100, 5, 800 + 2000},
		{50_000_064, 6, 50_000_064 * (8 + 24)},
	}
	for _, tt := range tests {
		if got := EstimateSweepBytes(tt.pairs, tt.multipliers); got != tt.want {
			t.Errorf("EstimateSweepBytes(%d, %d) = %d, want %d", tt.pairs, tt.multipliers, got, tt.want)
		}
	}
}

var sink []uint32

func TestReadMemory_CoversProductSlices(t *testing.T) {
	const pairs, multipliers = 1 << 16, 4
	before := ReadMemory()
	for i := 0; i < multipliers; i++ {
		sink = make([]uint32, pairs)
	}
	delta := ReadMemory().Since(before)

	// The product slices alone account for the multiplier share of the
	// estimate.
	want := EstimateSweepBytes(pairs, multipliers) - pairs*pairBytes
	if delta.TotalAlloc < want {
		t.Errorf("allocated %d bytes, want at least %d", delta.TotalAlloc, want)
	}
	if delta.HeapAlloc == 0 {
		t.Error("HeapAlloc should be the current live heap")
	}
}

func TestMemorySnapshot_Since(t *testing.T) {
	t.Parallel()
	before := MemorySnapshot{HeapAlloc: 10, TotalAlloc: 100, NumGC: 2, GCPause: time.Millisecond}
	after := MemorySnapshot{HeapAlloc: 40, TotalAlloc: 350, NumGC: 5, GCPause: 3 * time.Millisecond}

	got := after.Since(before)
	want := MemorySnapshot{HeapAlloc: 40, TotalAlloc: 250, NumGC: 3, GCPause: 2 * time.Millisecond}
	if got != want {
		t.Errorf("Since = %+v, want %+v", got, want)
	}
	if got := after.Since(MemorySnapshot{}); got != after {
		t.Errorf("Since(zero) = %+v, want %+v", got, after)
	}
	if got := before.Since(after); got != before {
		t.Errorf("Since(later) = %+v, want the snapshot unchanged", got)
	}
}
