package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/progress"
	"github.com/agbru/limbcalc/internal/sweep"
	"github.com/agbru/limbcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSweeps int, out io.Writer) {
	DisplayProgress(wg, progressChan, numSweeps, out)
}

// CLIColorProvider supplies the current theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per multiplier: name, duration,
// throughput, digest and status. Padding is computed on the plain text so
// that ANSI codes do not break alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Algorithm")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, utf8.RuneCountInString(displayDuration(res.Duration)))
	}
	const throughputLen = 16
	const digestLen = 16

	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sThroughput%s%s   %sDigest%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Algorithm")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", throughputLen-len("Throughput")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", digestLen-len("Digest")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status, digest, throughput string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			digest, throughput = "-", "-"
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			digest = fmt.Sprintf("%016x", res.Result.Digest)
			throughput = format.FormatThroughput(res.Result.Count(), res.Duration.Seconds())
		}
		duration := displayDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-utf8.RuneCountInString(duration)),
			throughput, padRight("", throughputLen-len(throughput)),
			ui.ColorDim(), digest, ui.ColorReset(), padRight("", digestLen-len(digest)),
			status)
	}
}

// displayDuration picks the unit that keeps sub-second sweeps readable.
func displayDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d < time.Minute:
		return fmt.Sprintf("%.3fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the agreed digest and the sweep parameters.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\nVerified %s%s%s pairs (%d edge cases + %s random, seed %d) in suite %s%s%s.\n",
		ui.ColorBold(), format.FormatNumberString(fmt.Sprint(result.Result.Count())), ui.ColorReset(),
		sweep.EdgeCount, format.FormatNumberString(fmt.Sprint(opts.Count)), opts.Seed,
		ui.ColorCyan(), opts.Suite, ui.ColorReset())
	fmt.Fprintf(out, "Reference: %s, digest %s%016x%s, %s.\n",
		result.Name, ui.ColorGreen(), result.Result.Digest, ui.ColorReset(),
		format.FormatThroughput(result.Result.Count(), result.Duration.Seconds()))
	if opts.Verbose {
		DisplayMemoryStats(metrics.ReadMemory().Since(opts.MemoryBefore), out)
	}
}

// PresentMismatch prints a divergence report.
func (CLIResultPresenter) PresentMismatch(mismatch error, out io.Writer) {
	fmt.Fprintf(out, "%s✗ %v%s\n", ui.ColorRed(), mismatch, ui.ColorReset())
}

// FormatDuration formats a sweep duration as shown in the comparison table.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return displayDuration(d)
}

// HandleError prints a status line and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows the memory work of the sweeps.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(snap.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	fmt.Fprintf(out, "  GC pause:        %s\n", displayDuration(snap.GCPause))
}
