package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// envSetter stores a raw environment value into one AppConfig field.
// Values that do not parse are ignored and the flag default stays.
type envSetter func(c *AppConfig, raw string)

func envUint(field func(*AppConfig) *uint64) envSetter {
	return func(c *AppConfig, raw string) {
		// base 0 accepts the 0x operands used in the demonstration
		if v, err := strconv.ParseUint(raw, 0, 64); err == nil {
			*field(c) = v
		}
	}
}

func envInt(field func(*AppConfig) *int) envSetter {
	return func(c *AppConfig, raw string) {
		if v, err := strconv.Atoi(raw); err == nil {
			*field(c) = v
		}
	}
}

func envDuration(field func(*AppConfig) *time.Duration) envSetter {
	return func(c *AppConfig, raw string) {
		if v, err := time.ParseDuration(raw); err == nil {
			*field(c) = v
		}
	}
}

func envString(field func(*AppConfig) *string) envSetter {
	return func(c *AppConfig, raw string) { *field(c) = raw }
}

func envBool(field func(*AppConfig) *bool) envSetter {
	return func(c *AppConfig, raw string) {
		p := field(c)
		*p = parseBoolEnv(raw, *p)
	}
}

// envOverride binds LIMBCALC_<key> to the flags it stands in for.
type envOverride struct {
	key   string
	flags []string
	set   envSetter
}

var envOverrides = []envOverride{
	{"A", []string{"a"}, envUint(func(c *AppConfig) *uint64 { return &c.A })},
	{"B", []string{"b"}, envUint(func(c *AppConfig) *uint64 { return &c.B })},
	{"WIDTH", []string{"width"}, envInt(func(c *AppConfig) *int { return &c.Width })},
	{"MODE", []string{"mode"}, envString(func(c *AppConfig) *string { return &c.Mode })},
	{"SUITE", []string{"suite"}, envString(func(c *AppConfig) *string { return &c.Suite })},
	{"ALGO", []string{"algo"}, envString(func(c *AppConfig) *string { return &c.Algo })},
	{"COUNT", []string{"count"}, envInt(func(c *AppConfig) *int { return &c.Count })},
	{"SEED", []string{"seed"}, envUint(func(c *AppConfig) *uint64 { return &c.Seed })},
	{"WORKERS", []string{"workers"}, envInt(func(c *AppConfig) *int { return &c.Workers })},
	{"TIMEOUT", []string{"timeout"}, envDuration(func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"ADDR", []string{"addr"}, envString(func(c *AppConfig) *string { return &c.Addr })},
	{"OUTPUT", []string{"output", "o"}, envString(func(c *AppConfig) *string { return &c.OutputFile })},
	{"LOG_LEVEL", []string{"log-level"}, envString(func(c *AppConfig) *string { return &c.LogLevel })},
	{"VERBOSE", []string{"v", "verbose"}, envBool(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", []string{"quiet", "q"}, envBool(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, envBool(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case. Anything else
// returns def.
func parseBoolEnv(raw string, def bool) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyEnvOverrides fills every field whose flags were not given on the
// command line from its LIMBCALC_ variable. Priority is flag, then
// environment, then default.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	given := setFlags(fs)
overrides:
	for _, o := range envOverrides {
		for _, name := range o.flags {
			if given[name] {
				continue overrides
			}
		}
		if raw := os.Getenv(EnvPrefix + o.key); raw != "" {
			o.set(config, raw)
		}
	}
}
