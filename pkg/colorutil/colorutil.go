// Package colorutil provides shared color utilities for the letterhead editor.
package colorutil

import (
	"image/color"
)

// Common chrome colors used throughout the application.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Accent    = color.RGBA{R: 0x1E, G: 0x66, B: 0xD0, A: 255}
	HandleRed = color.RGBA{R: 0xD0, G: 0x30, B: 0x30, A: 255}
)

// Brightness returns the mean of the 8-bit red, green and blue channels,
// in the range 0-255. The alpha channel is ignored.
func Brightness(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (float64(r>>8) + float64(g>>8) + float64(b>>8)) / 3.0
}

// BrightnessNRGBA is the allocation-free variant of Brightness for raw
// NRGBA channel values.
func BrightnessNRGBA(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3.0
}
