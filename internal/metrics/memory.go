// Package metrics reads runtime memory statistics and estimates the memory
// footprint of a verification sweep.
package metrics

import (
	"runtime"
	"time"
)

const (
	pairBytes    = 8 // two uint32 operands
	productBytes = 4
)

// EstimateSweepBytes returns the memory held by a sweep of pairs operand
// pairs run by the given number of multipliers: the shared operands plus
// one product slice per multiplier.
func EstimateSweepBytes(pairs, multipliers int) uint64 {
	if pairs <= 0 {
		return 0
	}
	return uint64(pairs)*pairBytes + uint64(pairs)*productBytes*uint64(max(multipliers, 0))
}

// MemorySnapshot is a reading of the Go runtime's memory counters.
type MemorySnapshot struct {
	// HeapAlloc is the live heap in bytes.
	HeapAlloc uint64
	// TotalAlloc is the cumulative number of bytes allocated.
	TotalAlloc uint64
	// NumGC counts completed collections.
	NumGC uint32
	// GCPause is the cumulative stop-the-world pause.
	GCPause time.Duration
}

// ReadMemory returns the current counters.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		NumGC:      m.NumGC,
		GCPause:    time.Duration(m.PauseTotalNs),
	}
}

// Since returns the work done between before and s: allocation, collections
// and pause are differences, HeapAlloc stays the current value. A zero
// before yields s unchanged.
func (s MemorySnapshot) Since(before MemorySnapshot) MemorySnapshot {
	if before.TotalAlloc > s.TotalAlloc {
		return s
	}
	return MemorySnapshot{
		HeapAlloc:  s.HeapAlloc,
		TotalAlloc: s.TotalAlloc - before.TotalAlloc,
		NumGC:      s.NumGC - before.NumGC,
		GCPause:    s.GCPause - before.GCPause,
	}
}
