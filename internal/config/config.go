// Package config parses and validates the limbcalc command line.
//
// Values are resolved in the order CLI flag > LIMBCALC_ environment
// variable > default. Invalid values surface as apperrors.ConfigError.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/multiplier"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "LIMBCALC_"

// Run modes.
const (
	ModeDemo   = "demo"
	ModeVerify = "verify"
	ModeServe  = "serve"
)

// Defaults.
const (
	DefaultWidth   = 31
	DefaultCount   = 100_000
	DefaultSeed    = 1
	DefaultTimeout = time.Minute
	DefaultAddr    = ":8080"
	// MaxCount bounds the number of random pairs of a verify sweep.
	MaxCount = 50_000_000
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// A and B are the operands of the demonstration.
	A, B uint64
	// Width is the checked result width of the demonstration, 31 or 32.
	Width int
	// Mode selects demo, verify or serve.
	Mode string
	// Suite is the multiplier suite used in verify mode.
	Suite string
	// Algo is "all" or the name of a single multiplier.
	Algo string
	// Count is the number of random operand pairs of a sweep.
	Count int
	// Seed drives the operand generator.
	Seed uint64
	// Workers is the number of goroutines per sweep. Zero selects a value
	// from the hardware.
	Workers int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Addr is the listen address of serve mode.
	Addr string
	// Quiet prints only the result.
	Quiet bool
	// Verbose adds execution details.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// OutputFile, when set, receives a report of the run.
	OutputFile string
	// LogLevel is the zerolog level name.
	LogLevel string
	// Version requests the version banner.
	Version bool
}

// Operands returns A and B as 32-bit values. Validate guarantees they fit.
func (c AppConfig) Operands() (uint32, uint32) {
	return uint32(c.A), uint32(c.B)
}

// LimbWidth returns Width as a limb.Width.
func (c AppConfig) LimbWidth() limb.Width {
	w, err := limb.ParseWidth(c.Width)
	if err != nil {
		return limb.Width32
	}
	return w
}

// MultiplierSuite returns Suite as a multiplier.Suite.
func (c AppConfig) MultiplierSuite() multiplier.Suite {
	s, err := multiplier.ParseSuite(c.Suite)
	if err != nil {
		return multiplier.SuiteU32
	}
	return s
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// and validates the result. Usage and flag errors go to errorWriter.
//
// Parameters:
//   - programName: The name shown in the usage text.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Destination of usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h, a ConfigError for invalid values.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.A, "a", uint64(limb.DemoA), "First operand (unsigned 32-bit).")
	fs.Uint64Var(&config.B, "b", uint64(limb.DemoB), "Second operand (unsigned 32-bit).")
	fs.IntVar(&config.Width, "width", DefaultWidth, "Checked result width of the demonstration (31 or 32).")
	fs.StringVar(&config.Mode, "mode", ModeDemo, "Run mode: 'demo', 'verify' or 'serve'.")
	fs.StringVar(&config.Suite, "suite", string(multiplier.SuiteU32), "Multiplier suite for verify mode ("+multiplier.SuiteList()+").")
	fs.StringVar(&config.Algo, "algo", "all", "Multiplier to run in verify mode, or 'all'.")
	fs.IntVar(&config.Count, "count", DefaultCount, "Number of random operand pairs in verify mode.")
	fs.Uint64Var(&config.Seed, "seed", DefaultSeed, "Seed of the operand generator.")
	fs.IntVar(&config.Workers, "workers", 0, "Goroutines per sweep (0 = auto).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "Listen address in serve mode.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show execution details.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.OutputFile, "output", "", "Write a report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	fs.BoolVar(&config.Version, "version", false, "Print the version and exit.")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(fs.Output(), "Multiplies two 32-bit operands through 11-bit/21-bit limbs and\n")
		fmt.Fprintf(fs.Output(), "cross-checks multiplication strategies.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&config, fs)
	config.Mode = strings.ToLower(config.Mode)
	config.Suite = strings.ToLower(config.Suite)

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return ApplyAdaptiveWorkers(config), nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if c.A > math.MaxUint32 {
		return apperrors.NewConfigError("operand a=%d does not fit in 32 bits", c.A)
	}
	if c.B > math.MaxUint32 {
		return apperrors.NewConfigError("operand b=%d does not fit in 32 bits", c.B)
	}
	if _, err := limb.ParseWidth(c.Width); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	switch c.Mode {
	case ModeDemo, ModeVerify, ModeServe:
	default:
		return apperrors.NewConfigError("unknown mode %q (accepted values: %s, %s, %s)", c.Mode, ModeDemo, ModeVerify, ModeServe)
	}
	suite, err := multiplier.ParseSuite(c.Suite)
	if err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Algo != "all" {
		available := multiplier.Names(suite)
		if !slices.Contains(available, c.Algo) {
			return apperrors.NewConfigError("unknown algorithm %q for suite %s (available: all, %s)",
				c.Algo, suite, strings.Join(available, ", "))
		}
	}
	if c.Count < 0 || c.Count > MaxCount {
		return apperrors.NewConfigError("count %d out of range [0, %d]", c.Count, MaxCount)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must be non-negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	return nil
}
