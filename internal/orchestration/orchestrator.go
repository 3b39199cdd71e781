package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/progress"
	"github.com/agbru/limbcalc/internal/sweep"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of dropped updates when the
// UI is slow to consume them.
const ProgressBufferMultiplier = 5

// ReferenceName is the multiplier preferred as the reference when comparing
// digests.
const ReferenceName = "big"

var tracer = otel.Tracer("github.com/agbru/limbcalc/internal/orchestration")

// ExecuteSweeps runs one sweep per multiplier over the same pairs,
// concurrently.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - multipliers: The strategies to sweep.
//   - pairs: The operand pairs, shared read-only by every sweep.
//   - workers: Goroutines per sweep.
//   - progressReporter: The progress display (NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []CalculationResult: One result per multiplier, in input order.
func ExecuteSweeps(ctx context.Context, multipliers []multiplier.Multiplier, pairs []sweep.Pair, workers int, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(multipliers))
	progressChan := make(chan progress.ProgressUpdate, len(multipliers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(multipliers), out)

	for i, m := range multipliers {
		g.Go(func() error {
			results[i] = runSweep(ctx, m, pairs, workers, progress.ChannelCallback(progressChan, i))
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runSweep(ctx context.Context, m multiplier.Multiplier, pairs []sweep.Pair, workers int, report progress.ProgressCallback) CalculationResult {
	ctx, span := tracer.Start(ctx, "sweep", trace.WithAttributes(
		attribute.String("limbcalc.algorithm", m.Name()),
		attribute.Int("limbcalc.pairs", len(pairs)),
		attribute.Int("limbcalc.workers", workers),
	))
	defer span.End()

	start := time.Now()
	res, err := sweep.Run(ctx, m, pairs, workers, report)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		err = apperrors.CalculationError{Cause: err}
	} else {
		span.SetAttributes(attribute.String("limbcalc.digest", fmt.Sprintf("%016x", res.Digest)))
	}
	return CalculationResult{Name: m.Name(), Result: res, Duration: time.Since(start), Err: err}
}

// FindMismatches compares every successful result against the reference
// result and describes the first diverging pair of each disagreeing one.
// The reference is ReferenceName when it succeeded, else the first
// successful result.
func FindMismatches(results []CalculationResult, pairs []sweep.Pair) []apperrors.MismatchError {
	ref := referenceResult(results)
	if ref == nil {
		return nil
	}

	var mismatches []apperrors.MismatchError
	for _, res := range results {
		if res.Err != nil || res.Name == ref.Name || res.Result.Digest == ref.Result.Digest {
			continue
		}
		m := apperrors.MismatchError{Algorithm: res.Name, Reference: ref.Name, Index: -1}
		if idx := sweep.FirstDivergence(ref.Result, res.Result); idx >= 0 &&
			idx < len(pairs) && idx < ref.Result.Count() && idx < res.Result.Count() {
			m.Index = idx
			m.A, m.B = pairs[idx].A, pairs[idx].B
			m.Expected, m.Got = ref.Result.Products[idx], res.Result.Products[idx]
		}
		mismatches = append(mismatches, m)
	}
	return mismatches
}

func referenceResult(results []CalculationResult) *CalculationResult {
	var first *CalculationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if results[i].Name == ReferenceName {
			return &results[i]
		}
		if first == nil {
			first = &results[i]
		}
	}
	return first
}

// AnalyzeComparisonResults sorts the results, prints the comparison table and
// decides the global status.
//
// Parameters:
//   - results: The results to analyze. The slice is sorted in place.
//   - pairs: The operands of the sweeps, used to report divergences.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Maps the first error to an exit code when every sweep failed.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, pairs []sweep.Pair, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No multiplier could complete the sweep.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	if mismatches := FindMismatches(results, pairs); len(mismatches) > 0 {
		for _, m := range mismatches {
			presenter.PresentMismatch(m, out)
		}
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %d multiplier(s) disagree with the reference.\n", len(mismatches))
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*referenceResult(results), opts, out)
	return apperrors.ExitSuccess
}

// GetMultipliersToRun resolves the --algo selection against factory.
// "all" returns every registered multiplier in name order. An unknown
// name returns nil.
func GetMultipliersToRun(algo string, factory multiplier.Factory) []multiplier.Multiplier {
	if algo == "all" {
		names := factory.List()
		ms := make([]multiplier.Multiplier, 0, len(names))
		for _, name := range names {
			if m, err := factory.Get(name); err == nil {
				ms = append(ms, m)
			}
		}
		return ms
	}
	if m, err := factory.Get(algo); err == nil {
		return []multiplier.Multiplier{m}
	}
	return nil
}
