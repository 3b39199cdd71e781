package apperrors

import (
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used when reporting errors.
// The CLI passes its theme; tests pass empty strings.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError prints a status line for err and returns the exit
// code to use. A nil error prints nothing and yields ExitSuccess.
//
// Parameters:
//   - err: The error returned by the sweep, possibly nil.
//   - duration: Elapsed time, printed when non-zero.
//   - out: Destination of the status line.
//   - colors: Color sequences for the message.
//
// Returns:
//   - int: The exit code matching err.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration)
	}

	code := ExitCode(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached%s.%s\n",
			colors.Red(), elapsed, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case ExitErrorMismatch:
		fmt.Fprintf(out, "%sStatus: Mismatch. %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. Unexpected error: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
