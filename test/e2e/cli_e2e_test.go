package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/limbcalc into a temporary directory. go test runs
// with the package directory as working directory, so the module root is
// two levels up.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	binName := "limbcalc"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/limbcalc")
	cmd.Dir = filepath.Join("..", "..")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build limbcalc: %v", err)
	}
	return binPath
}

// TestCLI_E2E runs the built binary and checks its output and exit code.
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)

	tests := []struct {
		name     string
		args     []string
		wantOut  string // case-insensitive substring
		wantCode int
	}{
		{
			name:     "Demo",
			args:     nil,
			wantOut:  "1234872015 0b1001001100110101010011011001111",
			wantCode: 0,
		},
		{
			name:     "Demo Full Width",
			args:     []string{"--width", "32"},
			wantOut:  "3382355663 0b11001001100110101010011011001111",
			wantCode: 0,
		},
		{
			name:     "Quiet Demo",
			args:     []string{"-a", "6", "-b", "7", "-q"},
			wantOut:  "42",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Verify All",
			args:     []string{"--mode", "verify", "--count", "2000"},
			wantOut:  "Global Status: Success",
			wantCode: 0,
		},
		{
			name:     "Verify Field Suite",
			args:     []string{"--mode", "verify", "--suite", "fp21", "--count", "2000"},
			wantOut:  "pseudo-mersenne",
			wantCode: 0,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"--mode", "verify", "--count", "5000000", "--timeout", "1ns"},
			wantOut:  "timeout",
			wantCode: 2,
		},
		{
			name:     "Invalid Width",
			args:     []string{"--width", "16"},
			wantOut:  "unsupported width",
			wantCode: 4,
		},
		{
			name:     "Unknown Algorithm",
			args:     []string{"--mode", "verify", "--algo", "karatsuba"},
			wantOut:  "unknown algorithm",
			wantCode: 4,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "limbcalc",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running limbcalc: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}

			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}

// TestCLI_E2E_EnvOverrides checks that LIMBCALC_ variables apply when no
// flag is given.
func TestCLI_E2E_EnvOverrides(t *testing.T) {
	binPath := buildBinary(t)

	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "LIMBCALC_A=100", "LIMBCALC_B=0x10", "LIMBCALC_QUIET=true")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("limbcalc failed: %v\n%s", err, output)
	}
	if strings.TrimSpace(string(output)) != "1600" {
		t.Errorf("output = %q, want %q", output, "1600")
	}
}
