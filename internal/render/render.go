// Package render rasterizes the composed document into a bitmap. It draws
// only printing content: selection chrome, handles and tool panels are
// export-excluded and never reach the rasterizer.
package render

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"letterhead/internal/element"
	"letterhead/pkg/geometry"
)

// DefaultFontSize is the nominal text size in document pixels when the
// text collaborator reports none.
const DefaultFontSize = 16

// TextItem is a positioned text block. Content is treated as plain lines;
// rich formatting is the text collaborator's concern.
type TextItem struct {
	ID       int64
	Pos      geometry.Point2D
	Content  string
	FontSize float64
}

// ImageItem is a positioned raster with its crop mask.
type ImageItem struct {
	ID     int64
	Pos    geometry.Point2D
	Size   geometry.Size
	Raster image.Image
	Crop   element.CropRect
}

// Page describes the printable document: a fixed-size white page with the
// overlay elements in stacking order.
type Page struct {
	Size   geometry.Size
	Texts  []TextItem
	Images []ImageItem
}

// PageFromElements builds a Page from the element collection. Stacking
// order is element ID order, the stable creation order.
func PageFromElements(size geometry.Size, c *element.Collection) Page {
	p := Page{Size: size}
	for _, t := range c.Texts() {
		p.Texts = append(p.Texts, TextItem{
			ID:       t.ID(),
			Pos:      t.Position(),
			Content:  t.Content(),
			FontSize: DefaultFontSize,
		})
	}
	for _, e := range c.Images() {
		p.Images = append(p.Images, ImageItem{
			ID:     e.ID(),
			Pos:    e.Position(),
			Size:   e.Size(),
			Raster: e.Processed(),
			Crop:   e.Crop(),
		})
	}
	return p
}

// Rasterize draws the page at the given supersampling scale and returns
// the bitmap.
func Rasterize(p Page, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("render: invalid scale %v", scale)
	}
	w := int(p.Size.Width*scale + 0.5)
	h := int(p.Size.Height*scale + 0.5)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: empty page %vx%v", p.Size.Width, p.Size.Height)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}

	for _, it := range drawOrder(p) {
		switch item := it.(type) {
		case ImageItem:
			drawImageItem(dc, item, scale)
		case TextItem:
			drawTextItem(dc, ft, item, scale)
		}
	}

	return dc.Image().(*image.RGBA), nil
}

// drawOrder interleaves texts and images by element ID.
func drawOrder(p Page) []interface{} {
	items := make([]interface{}, 0, len(p.Texts)+len(p.Images))
	for _, t := range p.Texts {
		items = append(items, t)
	}
	for _, im := range p.Images {
		items = append(items, im)
	}
	sort.Slice(items, func(i, j int) bool {
		return itemID(items[i]) < itemID(items[j])
	})
	return items
}

func itemID(it interface{}) int64 {
	switch item := it.(type) {
	case ImageItem:
		return item.ID
	case TextItem:
		return item.ID
	}
	return 0
}

func drawImageItem(dc *gg.Context, item ImageItem, scale float64) {
	if item.Raster == nil || item.Raster.Bounds().Empty() {
		return
	}

	w := int(item.Size.Width*scale + 0.5)
	h := int(item.Size.Height*scale + 0.5)
	if w <= 0 || h <= 0 {
		return
	}

	// Scale the full raster to the element's on-page size, then copy only
	// the crop-visible region: a clip, not a destructive transform.
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), item.Raster, item.Raster.Bounds(), xdraw.Over, nil)

	visible := item.Crop.Apply(geometry.NewRect(0, 0, float64(w), float64(h)))
	if visible.Empty() {
		return
	}
	visPx := image.Rect(
		int(visible.X+0.5), int(visible.Y+0.5),
		int(visible.X+visible.Width+0.5), int(visible.Y+visible.Height+0.5),
	)

	part := image.NewRGBA(image.Rect(0, 0, visPx.Dx(), visPx.Dy()))
	xdraw.Draw(part, part.Bounds(), scaled, visPx.Min, xdraw.Over)

	dc.DrawImage(part, int(item.Pos.X*scale+0.5)+visPx.Min.X, int(item.Pos.Y*scale+0.5)+visPx.Min.Y)
}

// MeasureText reports the box a text block occupies at nominal scale, so
// hit-testing can use the rendered extent instead of a placeholder.
func MeasureText(content string, fontSize float64) (geometry.Size, error) {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("render: parse font: %w", err)
	}
	face := truetype.NewFace(ft, &truetype.Options{Size: fontSize})
	defer face.Close()

	var widest float64
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		w := float64(font.MeasureString(face, line)) / 64
		if w > widest {
			widest = w
		}
	}
	return geometry.Size{
		Width:  widest,
		Height: fontSize * 1.3 * float64(len(lines)),
	}, nil
}

func drawTextItem(dc *gg.Context, ft *truetype.Font, item TextItem, scale float64) {
	size := item.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	face := truetype.NewFace(ft, &truetype.Options{Size: size * scale})
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)

	lineHeight := size * scale * 1.3
	x := item.Pos.X * scale
	y := item.Pos.Y*scale + size*scale // first baseline
	for _, line := range strings.Split(item.Content, "\n") {
		dc.DrawString(line, x, y)
		y += lineHeight
	}
}
