// Package logging provides the logging interface used across limbcalc.
// Components depend on [Logger] and typed [Field] values only; the zerolog
// backend writes JSON lines or, on a terminal, a console format.
package logging
