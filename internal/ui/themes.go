package ui

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color scheme given as xterm-256 color numbers. The escape
// sequences of the Color* helpers and the lipgloss [Palette] both derive
// from it, so plain and boxed output always agree.
type Theme struct {
	// Name identifies the theme ("dark" or "none").
	Name string
	// Accent marks labels, operands and the progress spinner.
	Accent uint8
	// Highlight marks the high limb and trace headings.
	Highlight uint8
	// Muted is used for timings and secondary text.
	Muted uint8
	// Success, Warning and Error color verdicts.
	Success uint8
	Warning uint8
	Error   uint8
	// Plain suppresses every escape sequence.
	Plain bool
}

var (
	// DarkTheme is the default theme.
	DarkTheme = Theme{
		Name:      "dark",
		Accent:    39,
		Highlight: 141,
		Muted:     245,
		Success:   82,
		Warning:   220,
		Error:     196,
	}

	// NoColorTheme is selected by --no-color or NO_COLOR.
	NoColorTheme = Theme{Name: "none", Plain: true}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// fg returns the foreground escape for color c.
func (t Theme) fg(c uint8) string {
	return t.sgr(fmt.Sprintf("38;5;%d", c))
}

func (t Theme) sgr(code string) string {
	if t.Plain {
		return ""
	}
	return "\033[" + code + "m"
}

// Palette converts the theme to lipgloss colors.
func (t Theme) Palette() Palette {
	if t.Plain {
		return NoColorPalette
	}
	c := func(n uint8) lipgloss.TerminalColor { return lipgloss.Color(strconv.Itoa(int(n))) }
	return Palette{
		Border:  c(t.Accent),
		Accent:  c(t.Highlight),
		Success: c(t.Success),
		Error:   c(t.Error),
		Dim:     c(t.Muted),
	}
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme; tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme from the --no-color flag and the NO_COLOR
// environment variable (https://no-color.org/). Any value of NO_COLOR,
// including an empty one, disables colors.
func InitTheme(noColor bool) {
	_, envNoColor := os.LookupEnv("NO_COLOR")
	if noColor || envNoColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
