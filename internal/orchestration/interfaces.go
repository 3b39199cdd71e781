package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/progress"
	"github.com/agbru/limbcalc/internal/sweep"
)

// CalculationResult is the outcome of one multiplier's sweep. It is the
// shared domain type between orchestration and presentation.
type CalculationResult struct {
	// Name is the multiplier name (e.g., "limb").
	Name string
	// Result holds the products and digest. It is empty if Err is set.
	Result sweep.Result
	// Duration is the wall time of the sweep.
	Duration time.Duration
	// Err contains any error that occurred during the sweep.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Suite   string
	Count   int
	Seed    uint64
	Verbose bool
	// MemoryBefore is read before the sweeps start; verbose output reports
	// the allocation since then.
	MemoryBefore metrics.MemorySnapshot
}

// ProgressReporter displays sweep progress.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, etc.) while the orchestration layer coordinates the sweeps.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSweeps int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSweeps int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSweeps int, out io.Writer) {
	f(wg, progressChan, numSweeps, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode, by the server and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents sweep results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-multiplier summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the agreed result of a successful verification.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)

	// PresentMismatch reports the first pair on which two multipliers differ.
	PresentMismatch(mismatch error, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles sweep errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
