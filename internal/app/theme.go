package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LetterheadTheme provides a custom theme for the application.
type LetterheadTheme struct{}

var _ fyne.Theme = (*LetterheadTheme)(nil)

func (t *LetterheadTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF} // Blue accent, matches selection outlines
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF} // Light desk around the white page
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *LetterheadTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *LetterheadTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *LetterheadTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
