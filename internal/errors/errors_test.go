package apperrors_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/multiplier"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/sweep"
)

// truncated drops the upper half of both operands, so it agrees with the
// reference only while both fit in 16 bits.
func truncated() multiplier.Multiplier {
	return multiplier.New("truncated", func(a, b uint32) uint32 {
		return (a & 0xFFFF) * (b & 0xFFFF)
	})
}

func sweepAll(t *testing.T, ctx context.Context, ms ...multiplier.Multiplier) ([]orchestration.CalculationResult, []sweep.Pair) {
	t.Helper()
	pairs := sweep.GenerateOperands(multiplier.SuiteU32, 1, 256)
	results := orchestration.ExecuteSweeps(ctx, ms, pairs, 2, orchestration.NullProgressReporter{}, nil)
	return results, pairs
}

func reference(t *testing.T) multiplier.Multiplier {
	t.Helper()
	f, err := multiplier.NewDefaultFactory(multiplier.SuiteU32)
	if err != nil {
		t.Fatal(err)
	}
	m, err := f.Get(orchestration.ReferenceName)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMismatchError_FromSweep(t *testing.T) {
	t.Parallel()
	results, pairs := sweepAll(t, context.Background(), reference(t), truncated())

	mismatches := orchestration.FindMismatches(results, pairs)
	if len(mismatches) != 1 {
		t.Fatalf("got %d mismatches, want 1", len(mismatches))
	}
	m := mismatches[0]
	// (1, 0xFFFFF800) is the first edge pair with a high half set.
	if m.Index != 12 || m.A != 1 || m.B != 0xFFFFF800 {
		t.Errorf("first divergence = #%d (%d, %#x)", m.Index, m.A, m.B)
	}
	if m.Expected != 0xFFFFF800 || m.Got != 0xF800 {
		t.Errorf("expected/got = %#x/%#x", m.Expected, m.Got)
	}
	want := "truncated disagrees with big at pair #12: 1 * 4294965248 = 63488, expected 4294965248"
	if m.Error() != want {
		t.Errorf("Error() = %q, want %q", m.Error(), want)
	}
	if got := apperrors.ExitCode(m); got != apperrors.ExitErrorMismatch {
		t.Errorf("ExitCode = %d, want %d", got, apperrors.ExitErrorMismatch)
	}
}

func TestExitCode_CanceledSweep(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, _ := sweepAll(t, ctx, reference(t))

	err := results[0].Err
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("err = %v, want a CalculationError", err)
	}
	if !apperrors.IsContextError(err) {
		t.Error("a canceled sweep should be a context error")
	}
	if got := apperrors.ExitCode(err); got != apperrors.ExitErrorCanceled {
		t.Errorf("ExitCode = %d, want %d", got, apperrors.ExitErrorCanceled)
	}
}

func TestExitCode_TimedOutSweep(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	results, _ := sweepAll(t, ctx, reference(t))

	if got := apperrors.ExitCode(results[0].Err); got != apperrors.ExitErrorTimeout {
		t.Errorf("ExitCode = %d, want %d", got, apperrors.ExitErrorTimeout)
	}
}

func TestWrapError_KeepsExitCode(t *testing.T) {
	t.Parallel()
	if apperrors.WrapError(nil, "saving %s", "report.txt") != nil {
		t.Error("wrapping nil should return nil")
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"mismatch", apperrors.MismatchError{Algorithm: "limb", Reference: "big"}, apperrors.ExitErrorMismatch},
		{"config", apperrors.NewConfigError("width must be 31 or 32, got %d", 16), apperrors.ExitErrorConfig},
		{"timeout", apperrors.TimeoutError{Operation: "verify", Limit: time.Minute}, apperrors.ExitErrorTimeout},
		{"deadline", apperrors.CalculationError{Cause: context.DeadlineExceeded}, apperrors.ExitErrorTimeout},
		{"memory", apperrors.MemoryError{Requested: 1 << 30, Available: 1 << 20}, apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := apperrors.WrapError(tt.err, "suite %s", multiplier.SuiteU32)
			if !strings.HasPrefix(wrapped.Error(), "suite u32: ") {
				t.Errorf("wrapped message = %q", wrapped)
			}
			if got := apperrors.ExitCode(wrapped); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("the cause should stay reachable")
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{apperrors.CalculationError{Cause: context.DeadlineExceeded}, true},
		{apperrors.WrapError(context.Canceled, "sweep %s", "limb"), true},
		{apperrors.TimeoutError{Operation: "verify", Limit: time.Second}, false},
		{apperrors.ValidationError{Field: "count", Message: "must be positive"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := apperrors.IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %t, want %t", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want string
	}{
		{apperrors.NewConfigError("invalid value %d for flag %s", 16, "--width"), "invalid value 16 for flag --width"},
		{apperrors.ValidationError{Field: "seed", Message: "must be an unsigned integer"}, `validation error for "seed": must be an unsigned integer`},
		{apperrors.TimeoutError{Operation: "verify", Limit: 90 * time.Second}, `operation "verify" timed out after 1m30s`},
		{apperrors.MemoryError{Requested: 4096, Available: 1024, Limit: 2048}, "memory error: requested 4096 bytes, available 1024 bytes (limit: 2048)"},
		{apperrors.CalculationError{Cause: errors.New("gmp unavailable")}, "gmp unavailable"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}
