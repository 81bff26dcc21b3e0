package imaging

import (
	"image"
	"image/color"

	"letterhead/pkg/colorutil"
)

// RemoveBackground returns a copy of src where every pixel whose mean
// red/green/blue brightness exceeds 255 - threshold*2.55 has its alpha set
// to zero. All other pixels are unchanged, including their alpha.
//
// At threshold 0 the source image is returned as-is: nothing can match the
// cutoff and re-encoding would only introduce artifacts. The function is a
// pure function of (src, threshold).
func RemoveBackground(src image.Image, threshold int) image.Image {
	if src == nil {
		return nil
	}
	if threshold <= 0 {
		return src
	}
	if threshold > 100 {
		threshold = 100
	}

	cutoff := 255.0 - float64(threshold)*2.55

	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	// Fast path needs contiguous rows; a SubImage keeps its parent's
	// stride and must go through the generic loop.
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Stride == 4*bounds.Dx() {
		copy(out.Pix, nrgba.Pix)
		for i := 0; i < len(out.Pix); i += 4 {
			if colorutil.BrightnessNRGBA(out.Pix[i], out.Pix[i+1], out.Pix[i+2]) > cutoff {
				out.Pix[i+3] = 0
			}
		}
		return out
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if colorutil.BrightnessNRGBA(c.R, c.G, c.B) > cutoff {
				c.A = 0
			}
			out.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, c)
		}
	}
	return out
}

// Processor memoizes RemoveBackground by its (source, threshold) pair and
// guards against sources that have not finished decoding. Each image
// element owns one Processor so its processed raster is never stale with
// respect to the source and threshold.
type Processor struct {
	lastSrc       image.Image
	lastThreshold int
	lastResult    image.Image
}

// Process returns the background-stripped raster for the given source and
// threshold. If the source is nil or has empty bounds (not decoded yet),
// the previous result is retained rather than computing from partial pixel
// data.
func (p *Processor) Process(src image.Image, threshold int) image.Image {
	if src == nil || src.Bounds().Empty() {
		return p.lastResult
	}
	if p.lastResult != nil && src == p.lastSrc && threshold == p.lastThreshold {
		return p.lastResult
	}

	p.lastSrc = src
	p.lastThreshold = threshold
	p.lastResult = RemoveBackground(src, threshold)
	return p.lastResult
}

// Last returns the most recent processed raster, which may be nil.
func (p *Processor) Last() image.Image {
	return p.lastResult
}
