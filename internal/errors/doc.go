// Package apperrors defines the structured error types of limbcalc and the
// mapping from those errors to process exit codes.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Types carrying a cause implement Unwrap() so errors.Is() and errors.As()
// see through them.
package apperrors
