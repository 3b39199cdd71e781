// Package ui provides the color themes of the limbcalc CLI: ANSI escape
// codes for plain output and lipgloss styles for the boxed headers.
// NO_COLOR and --no-color select a theme without any escape sequences.
package ui
