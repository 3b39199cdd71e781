package ui

import "github.com/charmbracelet/lipgloss"

// Palette holds the lipgloss colors matching a Theme.
type Palette struct {
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

// NoColorPalette renders with the terminal's default colors.
var NoColorPalette = Palette{
	Border:  lipgloss.NoColor{},
	Accent:  lipgloss.NoColor{},
	Success: lipgloss.NoColor{},
	Error:   lipgloss.NoColor{},
	Dim:     lipgloss.NoColor{},
}

// CurrentPalette returns the palette of the active theme.
func CurrentPalette() Palette {
	return GetCurrentTheme().Palette()
}

// HeaderBox renders title and lines inside a rounded border.
func HeaderBox(title string, lines ...string) string {
	p := CurrentPalette()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	bodyStyle := lipgloss.NewStyle().Foreground(p.Dim)

	content := titleStyle.Render(title)
	for _, l := range lines {
		content += "\n" + bodyStyle.Render(l)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Render(content)
}

// StatusStyle returns the style for an OK or FAIL verdict.
func StatusStyle(ok bool) lipgloss.Style {
	p := CurrentPalette()
	if ok {
		return lipgloss.NewStyle().Bold(true).Foreground(p.Success)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(p.Error)
}
