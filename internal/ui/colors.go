package ui

// ColorReset returns the sequence that clears all attributes.
func ColorReset() string { return GetCurrentTheme().sgr("0") }

// ColorRed returns the error color of the current theme.
func ColorRed() string {
	t := GetCurrentTheme()
	return t.fg(t.Error)
}

// ColorGreen returns the success color of the current theme.
func ColorGreen() string {
	t := GetCurrentTheme()
	return t.fg(t.Success)
}

// ColorYellow returns the warning color of the current theme.
func ColorYellow() string {
	t := GetCurrentTheme()
	return t.fg(t.Warning)
}

// ColorBlue returns the accent color of the current theme.
func ColorBlue() string {
	t := GetCurrentTheme()
	return t.fg(t.Accent)
}

// ColorMagenta returns the highlight color of the current theme.
func ColorMagenta() string {
	t := GetCurrentTheme()
	return t.fg(t.Highlight)
}

// ColorCyan returns the accent color of the current theme.
func ColorCyan() string {
	t := GetCurrentTheme()
	return t.fg(t.Accent)
}

// ColorDim returns the muted color of the current theme.
func ColorDim() string {
	t := GetCurrentTheme()
	return t.fg(t.Muted)
}

// ColorBold returns the bold sequence.
func ColorBold() string { return GetCurrentTheme().sgr("1") }

// ColorUnderline returns the underline sequence.
func ColorUnderline() string { return GetCurrentTheme().sgr("4") }
