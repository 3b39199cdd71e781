package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/limbcalc/internal/cli"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/sweep"
	"github.com/agbru/limbcalc/internal/sysmon"
)

// availableMemory is replaced in tests.
var availableMemory = func() uint64 { return sysmon.Sample().AvailableBytes }

// runVerify sweeps the configured suite with every selected multiplier and
// compares their digests.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	suite := a.Config.MultiplierSuite()
	factory, err := multiplier.NewDefaultFactory(suite)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(apperrors.NewConfigError("%v", err), 0, a.ErrWriter)
	}
	multipliers := orchestration.GetMultipliersToRun(a.Config.Algo, factory)
	if len(multipliers) == 0 {
		err := apperrors.NewConfigError("unknown algorithm %q for suite %s", a.Config.Algo, suite)
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}

	numPairs := sweep.EdgeCount + a.Config.Count
	if err := a.checkMemory(numPairs, len(multipliers)); err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(multipliers, out)
	}

	pairs := sweep.GenerateOperands(suite, a.Config.Seed, a.Config.Count)

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	a.Logger.Debug("sweeps starting",
		logging.String("suite", string(suite)),
		logging.Int("pairs", len(pairs)),
		logging.Int("multipliers", len(multipliers)),
		logging.Int("workers", a.Config.Workers))

	memBefore := metrics.ReadMemory()
	results := orchestration.ExecuteSweeps(ctx, multipliers, pairs, a.Config.Workers, progressReporter, progressOut)

	opts := orchestration.PresentationOptions{
		Suite:        string(suite),
		Count:        a.Config.Count,
		Seed:         a.Config.Seed,
		Verbose:      a.Config.Verbose,
		MemoryBefore: memBefore,
	}
	presenter := cli.CLIResultPresenter{}

	var exitCode int
	if a.Config.Quiet {
		exitCode = a.quietSummary(results, pairs, presenter, out)
	} else {
		exitCode = orchestration.AnalyzeComparisonResults(results, pairs, opts, presenter, presenter, out)
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteResultsToFile(results, opts, a.Config.OutputFile); err != nil {
			a.Logger.Error("saving report", err, logging.String("path", a.Config.OutputFile))
			return apperrors.ExitErrorGeneric
		}
		a.reportSaved(out)
	}
	return exitCode
}

// quietSummary prints the reference digest on success; failures and
// divergences go to the error writer.
func (a *Application) quietSummary(results []orchestration.CalculationResult, pairs []sweep.Pair, presenter cli.CLIResultPresenter, out io.Writer) int {
	var firstErr error
	var ref *orchestration.CalculationResult
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
			}
			continue
		}
		if ref == nil || results[i].Name == orchestration.ReferenceName {
			ref = &results[i]
		}
	}
	if ref == nil {
		return presenter.HandleError(firstErr, 0, a.ErrWriter)
	}

	if mismatches := orchestration.FindMismatches(results, pairs); len(mismatches) > 0 {
		for _, m := range mismatches {
			presenter.PresentMismatch(m, a.ErrWriter)
		}
		return apperrors.ExitErrorMismatch
	}
	fmt.Fprintf(out, "%016x\n", ref.Result.Digest)
	return apperrors.ExitSuccess
}

// checkMemory rejects sweeps whose buffers would not fit in the memory
// currently available.
func (a *Application) checkMemory(pairs, multipliers int) error {
	need := metrics.EstimateSweepBytes(pairs, multipliers)
	avail := availableMemory()
	if avail > 0 && need > avail {
		return apperrors.MemoryError{Requested: need, Available: avail, Limit: avail}
	}
	return nil
}
