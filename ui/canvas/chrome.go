package canvas

import (
	"image"
	"image/color"

	"letterhead/internal/app"
	"letterhead/internal/element"
	"letterhead/pkg/colorutil"
	"letterhead/pkg/geometry"
)

var (
	deskColor      = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	marginColor    = color.RGBA{R: 0xD0, G: 0xD8, B: 0xE8, A: 0xFF}
	hoverColor     = color.RGBA{R: 0x90, G: 0xB8, B: 0xE8, A: 0xFF}
	panelFillColor = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
)

// fillBackground paints the desk area around the page.
func fillBackground(output *image.RGBA) {
	b := output.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			output.SetRGBA(x, y, deskColor)
		}
	}
}

// blitPage copies the rendered page onto the output at the origin.
func blitPage(output *image.RGBA, page *image.RGBA) {
	ob := output.Bounds()
	pb := page.Bounds()
	w, h := pb.Dx(), pb.Dy()
	if w > ob.Dx() {
		w = ob.Dx()
	}
	if h > ob.Dy() {
		h = ob.Dy()
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			output.Set(x, y, page.At(pb.Min.X+x, pb.Min.Y+y))
		}
	}
}

// drawMarginGuides draws the non-printing margin frame. Like the
// selection chrome it exists only on screen, never in captures.
func drawMarginGuides(output *image.RGBA, m app.Margins, zoom float64) {
	left := int(float64(m.Left) * zoom)
	top := int(float64(m.Top) * zoom)
	right := int(float64(app.PageWidth-m.Right) * zoom)
	bottom := int(float64(app.PageHeight-m.Bottom) * zoom)
	if right <= left || bottom <= top {
		return
	}

	b := output.Bounds()
	for x := left; x <= right; x++ {
		setIfInside(output, b, x, top, marginColor)
		setIfInside(output, b, x, bottom, marginColor)
	}
	for y := top; y <= bottom; y++ {
		setIfInside(output, b, left, y, marginColor)
		setIfInside(output, b, right, y, marginColor)
	}
}

func drawElementChrome(output *image.RGBA, el element.Element, zoom float64) {
	if el.State() == element.StateIdle {
		return
	}

	box := el.BoundingBox()
	outline := colorutil.Accent
	if el.State() == element.StateHovered {
		outline = hoverColor
	}
	strokeRect(output, scaleRect(box, zoom), outline)

	handle := element.MoveHandleRect(box)
	fillRect(output, scaleRect(handle, zoom), colorutil.Accent)

	img, ok := el.(*element.ImageElement)
	if !ok {
		return
	}
	if el.State() == element.StateSelected || el.State() == element.StateResizing {
		fillRect(output, scaleRect(img.ResizeHandleRect(), zoom), colorutil.HandleRed)
	}
	if img.OpenPanel() != element.PanelNone {
		panel := geometry.NewRect(box.X, box.Y+box.Height, box.Width, 64)
		px := scaleRect(panel, zoom)
		fillRect(output, px, panelFillColor)
		strokeRect(output, px, colorutil.Accent)
	}
}

func scaleRect(r geometry.Rect, zoom float64) image.Rectangle {
	return image.Rect(
		int(r.X*zoom),
		int(r.Y*zoom),
		int((r.X+r.Width)*zoom),
		int((r.Y+r.Height)*zoom),
	)
}

// strokeRect draws a 2 pixel thick rectangle outline.
func strokeRect(output *image.RGBA, r image.Rectangle, col color.Color) {
	b := output.Bounds()
	for t := 0; t < 2; t++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			setIfInside(output, b, x, r.Min.Y+t, col)
			setIfInside(output, b, x, r.Max.Y-t, col)
		}
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			setIfInside(output, b, r.Min.X+t, y, col)
			setIfInside(output, b, r.Max.X-t, y, col)
		}
	}
}

func fillRect(output *image.RGBA, r image.Rectangle, col color.Color) {
	b := output.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			setIfInside(output, b, x, y, col)
		}
	}
}

func setIfInside(output *image.RGBA, b image.Rectangle, x, y int, col color.Color) {
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		output.Set(x, y, col)
	}
}
