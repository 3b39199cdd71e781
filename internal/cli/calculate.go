package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/sysmon"
	"github.com/agbru/limbcalc/internal/ui"
)

// PrintExecutionConfig displays the verification parameters and, in
// verbose mode, the host capabilities.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Verifying suite %s%s%s on %s%s%s random pairs (seed %d) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Suite, ui.ColorReset(),
		ui.ColorMagenta(), format.FormatNumberString(fmt.Sprint(cfg.Count)), ui.ColorReset(), cfg.Seed,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s%d%s workers per sweep, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.Verbose {
		PrintHostDetails(out)
	}
}

// PrintHostDetails displays the CPU model, the CPU features used by the
// float64 strategies and the current system load.
func PrintHostDetails(out io.Writer) {
	if model := sysmon.CPUModel(); model != "" {
		fmt.Fprintf(out, "CPU: %s\n", model)
	}
	fmt.Fprintf(out, "CPU features: %s%s%s (%s/%s)\n",
		ui.ColorCyan(), sysmon.CPUFeatures(), ui.ColorReset(), runtime.GOOS, runtime.GOARCH)
	stats := sysmon.Sample()
	fmt.Fprintf(out, "System load: CPU %.1f%%, memory %.1f%% (%s available)\n",
		stats.CPUPercent, stats.MemPercent, format.FormatBytes(stats.AvailableBytes))
	fmt.Fprintf(out, "Process heap: %s\n", format.FormatBytes(metrics.ReadMemory().HeapAlloc))
}

// PrintExecutionMode displays which multipliers will be compared.
//
// Parameters:
//   - multipliers: The multipliers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(multipliers []multiplier.Multiplier, out io.Writer) {
	var modeDesc string
	switch len(multipliers) {
	case 0:
		modeDesc = "No multiplier selected"
	case 1:
		modeDesc = fmt.Sprintf("Single sweep with the %s%s%s multiplier",
			ui.ColorGreen(), multipliers[0].Name(), ui.ColorReset())
	default:
		names := make([]string, len(multipliers))
		for i, m := range multipliers {
			names[i] = m.Name()
		}
		modeDesc = fmt.Sprintf("Parallel comparison of %d multipliers (%s)", len(multipliers), strings.Join(names, ", "))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
