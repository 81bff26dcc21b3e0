package imaging

import (
	"image"
	"sort"

	"gonum.org/v1/gonum/stat"

	"letterhead/pkg/colorutil"
)

// maxThresholdSamples bounds the number of pixels sampled when suggesting
// a threshold, so large scans stay cheap.
const maxThresholdSamples = 20000

// SuggestThreshold estimates a background-removal threshold for an image on
// a light background. It samples pixel brightness, takes the 75th
// percentile as the background level, and places the cutoff just below it.
// The result is a starting value for the slider, not a guarantee.
func SuggestThreshold(src image.Image) int {
	if src == nil || src.Bounds().Empty() {
		return 0
	}

	bounds := src.Bounds()
	total := bounds.Dx() * bounds.Dy()
	step := 1
	if total > maxThresholdSamples {
		step = total / maxThresholdSamples
	}

	samples := make([]float64, 0, maxThresholdSamples)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if i%step == 0 {
				samples = append(samples, colorutil.Brightness(src.At(x, y)))
			}
			i++
		}
	}
	if len(samples) == 0 {
		return 0
	}
	sort.Float64s(samples)

	background := stat.Quantile(0.75, stat.Empirical, samples, nil)
	cutoff := background - 12
	threshold := int((255-cutoff)/2.55 + 0.5)
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 100 {
		threshold = 100
	}
	return threshold
}
