package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/orchestration"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{
		Suite:   "u32",
		Count:   250000,
		Seed:    9,
		Workers: 4,
		Timeout: time.Minute,
	}

	var buf bytes.Buffer
	PrintExecutionConfig(cfg, &buf)
	output := buf.String()

	for _, want := range []string{"--- Execution Configuration ---", "suite u32", "250,000 random pairs", "seed 9", "4 workers", "1m0s"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "CPU features") {
		t.Error("host details should only be printed in verbose mode")
	}
}

func TestPrintExecutionConfig_Verbose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{Verbose: true, Timeout: time.Second}, &buf)

	for _, want := range []string{"CPU features:", "System load:", "Process heap:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory, err := multiplier.NewDefaultFactory(multiplier.SuiteU32)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		algo string
		want string
	}{
		{"single", "limb", "Single sweep with the limb multiplier"},
		{"all", "all", "Parallel comparison of"},
		{"none", "missing", "No multiplier selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionMode(orchestration.GetMultipliersToRun(tt.algo, factory), &buf)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
			if !strings.Contains(buf.String(), "--- Starting Execution ---") {
				t.Error("output should announce the execution")
			}
		})
	}
}
