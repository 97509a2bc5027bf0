package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DigitTheme darkens the default theme so the sliding digits read against a
// flat background.
type DigitTheme struct {
	fyne.Theme
}

// NewDigitTheme creates a new instance of the custom theme.
func NewDigitTheme() fyne.Theme {
	return &DigitTheme{Theme: theme.DefaultTheme()}
}

// Color returns the color for the given theme element.
func (t *DigitTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	}
	return t.Theme.Color(name, variant)
}
