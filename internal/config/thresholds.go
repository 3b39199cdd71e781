package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag --workers
//   2. Environment variable LIMBCALC_WORKERS
//   3. Hardware estimation (this file)

// ApplyAdaptiveWorkers fills Workers from the hardware when it was left at
// zero, preserving any explicit value.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers(cfg.Count)
	}
	return cfg
}

// EstimateOptimalWorkers picks a goroutine count for a sweep of count pairs.
// Small sweeps stay on one goroutine because chunk startup dominates.
func EstimateOptimalWorkers(count int) int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1, count < 16_384:
		return 1
	case count < 262_144:
		return min(numCPU, 4)
	default:
		return numCPU
	}
}
