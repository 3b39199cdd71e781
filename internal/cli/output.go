// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayTrace], [DisplayDemo], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//
//   - Write* functions write reports to files on the filesystem.
//     Examples: [WriteTraceToFile], [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/orchestration"
)

// WriteTraceToFile writes the demonstration report to path.
//
// Parameters:
//   - t: The traced multiplication.
//   - path: The output file; parent directories are created.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteTraceToFile(t limb.Trace, path string) error {
	return writeReport(path, func(w io.Writer) {
		fmt.Fprintf(w, "# limbcalc demonstration\n")
		fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(w, "# a: %d (hi:lo %s)\n", t.A, t.ALimbs)
		fmt.Fprintf(w, "# b: %d (hi:lo %s)\n", t.B, t.BLimbs)
		fmt.Fprintf(w, "# Width: %s\n", t.Width)
		fmt.Fprintf(w, "# OK: %t\n\n", t.OK())
		DisplayTrace(t, w)
	})
}

// WriteResultsToFile writes one line per multiplier with its digest.
//
// Parameters:
//   - results: The sweep results.
//   - opts: The sweep parameters recorded in the header.
//   - path: The output file; parent directories are created.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(results []orchestration.CalculationResult, opts orchestration.PresentationOptions, path string) error {
	return writeReport(path, func(w io.Writer) {
		fmt.Fprintf(w, "# limbcalc verification report\n")
		fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(w, "# Suite: %s\n", opts.Suite)
		fmt.Fprintf(w, "# Random pairs: %d\n", opts.Count)
		fmt.Fprintf(w, "# Seed: %d\n\n", opts.Seed)
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(w, "%s\terror\t%s\t%v\n", res.Name, res.Duration, res.Err)
				continue
			}
			fmt.Fprintf(w, "%s\t%016x\t%s\t%d\n", res.Name, res.Result.Digest, res.Duration, res.Result.Count())
		}
	})
}

func writeReport(path string, write func(io.Writer)) (err error) {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory %s", dir)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = apperrors.WrapError(cerr, "failed to close output file %s", path)
		}
	}()

	write(file)
	return nil
}
