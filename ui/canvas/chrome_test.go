package canvas

import (
	"image"
	"testing"

	"letterhead/internal/app"
	"letterhead/pkg/geometry"
)

func TestScaleRect(t *testing.T) {
	r := scaleRect(geometry.NewRect(10, 20, 30, 40), 2.0)
	want := image.Rect(20, 40, 80, 120)
	if r != want {
		t.Errorf("scaleRect = %v, want %v", r, want)
	}
}

func TestDrawMarginGuides(t *testing.T) {
	out := image.NewRGBA(image.Rect(0, 0, app.PageWidth, app.PageHeight))
	fillBackground(out)
	m := app.Margins{Top: 50, Right: 50, Bottom: 50, Left: 50}
	drawMarginGuides(out, m, 1.0)

	if out.RGBAAt(100, 50) != marginColor {
		t.Error("top guide not drawn")
	}
	if out.RGBAAt(50, 100) != marginColor {
		t.Error("left guide not drawn")
	}
	if out.RGBAAt(100, 100) == marginColor {
		t.Error("interior should not be painted")
	}
}

func TestDrawMarginGuidesDegenerate(t *testing.T) {
	out := image.NewRGBA(image.Rect(0, 0, 100, 100))
	// A frame that collapses to nothing must not draw.
	drawMarginGuides(out, app.Margins{Left: 500, Right: 500, Top: 600, Bottom: 600}, 1.0)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if out.RGBAAt(x, y) == marginColor {
				t.Fatalf("guide drawn at %d,%d for degenerate margins", x, y)
			}
		}
	}
}
