package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TimerTheme forces the configured light or dark variant.
type TimerTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

// NewTimerTheme creates a new instance of the timer theme.
func NewTimerTheme(dark bool) fyne.Theme {
	variant := theme.VariantLight
	if dark {
		variant = theme.VariantDark
	}
	return &TimerTheme{Theme: theme.DefaultTheme(), variant: variant}
}

// Color returns the color for the given name in the forced variant.
func (t *TimerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}
