package orchestration

import (
	"time"

	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/progress"
)

// ProgressAggregator folds the updates of several sweeps into one average
// and an ETA. It wraps format.ProgressWithETA for channel consumers.
type ProgressAggregator struct {
	state     *format.ProgressWithETA
	numSweeps int
}

// NewProgressAggregator creates an aggregator for numSweeps sweeps.
// Returns nil if numSweeps <= 0.
func NewProgressAggregator(numSweeps int) *ProgressAggregator {
	if numSweeps <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:     format.NewProgressWithETA(numSweeps),
		numSweeps: numSweeps,
	}
}

// AggregatedProgress is the result of processing one progress update.
type AggregatedProgress struct {
	// SweepIndex is the index of the sweep that sent the update.
	SweepIndex int
	// Value is the raw fraction from the update.
	Value float64
	// AverageProgress is the mean fraction across all sweeps.
	AverageProgress float64
	// ETA is the estimated remaining time.
	ETA time.Duration
}

// Update processes a single progress update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.SweepIndex, update.Value)
	return AggregatedProgress{
		SweepIndex:      update.SweepIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumSweeps returns the number of sweeps being tracked.
func (a *ProgressAggregator) NumSweeps() int {
	return a.numSweeps
}

// IsMultiSweep reports whether more than one sweep is tracked.
func (a *ProgressAggregator) IsMultiSweep() bool {
	return a.numSweeps > 1
}

// DrainChannel reads all updates from the channel until it is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
