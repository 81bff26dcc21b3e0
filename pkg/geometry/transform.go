package geometry

// Zoom limits for the shared document scale. Incremental zoom controls and
// scroll/pinch gestures may reach MaxZoom; the fit-to-viewport computation
// stops at MaxFitZoom so a narrow window never blows the page up past 2x.
const (
	MinZoom    = 0.2
	MaxZoom    = 3.0
	MaxFitZoom = 2.0
)

// ToDocumentDelta converts a pointer movement in screen pixels to a movement
// in document pixels at the given zoom. Without the division, dragging at 2x
// zoom would move an element twice as far as the pointer.
func ToDocumentDelta(screenDX, screenDY, zoom float64) (dx, dy float64) {
	return screenDX / zoom, screenDY / zoom
}

// ClampZoom limits a zoom value to the range allowed for incremental and
// gesture-driven zooming.
func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ClampFitZoom limits a zoom value to the range allowed for the
// fit-to-viewport computation.
func ClampFitZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxFitZoom {
		return MaxFitZoom
	}
	return z
}

// FitScale computes the zoom that makes a document of the given on-screen
// pixel width fill the viewport, leaving fixed padding on either side. The
// result is clamped to the fit range.
func FitScale(viewportWidth, padding, documentWidth float64) float64 {
	if documentWidth <= 0 {
		return 1.0
	}
	return ClampFitZoom((viewportWidth - padding) / documentWidth)
}
