// Package format holds the text formatting helpers shared by the CLI and the
// report writer: operands in binary, digit grouping and progress
// bars with an ETA.
package format
