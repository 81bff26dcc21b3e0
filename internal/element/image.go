package element

import (
	"image"

	"letterhead/internal/imaging"
	"letterhead/pkg/geometry"
)

// CropRect holds the four inset percentages (0-50 each) that define the
// visible rectangle inside an image element's bounding box. Cropping is a
// clip, not a destructive transform: the raster and stored size are
// untouched and resetting all sides to zero reverses it.
type CropRect struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Zero reports whether no cropping is applied.
func (c CropRect) Zero() bool {
	return c == CropRect{}
}

// Apply returns the visible rectangle for the given bounding box.
func (c CropRect) Apply(box geometry.Rect) geometry.Rect {
	return box.Inset(
		box.Height*float64(c.Top)/100,
		box.Width*float64(c.Right)/100,
		box.Height*float64(c.Bottom)/100,
		box.Width*float64(c.Left)/100,
	)
}

// CropSide identifies one side of the crop mask.
type CropSide int

const (
	CropTop CropSide = iota
	CropRight
	CropBottom
	CropLeft
)

// ImageElement is an overlay element showing a raster image. The source
// raster is immutable; the processed raster is recomputed synchronously
// whenever the source or threshold changes.
type ImageElement struct {
	base

	size      geometry.Size
	source    image.Image
	src       string // persisted origin (data URL or path)
	threshold int
	crop      CropRect
	panel     ToolPanel

	proc      imaging.Processor
	processed image.Image

	// Resize measures against the original down-point, not re-baselined.
	resizeStart  geometry.Point2D
	sizeSnapshot geometry.Size
}

// Size returns the element's stored dimensions in document pixels.
func (e *ImageElement) Size() geometry.Size {
	return e.size
}

// BoundingBox implements Element.
func (e *ImageElement) BoundingBox() geometry.Rect {
	return geometry.NewRect(e.pos.X, e.pos.Y, e.size.Width, e.size.Height)
}

// VisibleRect returns the bounding box with the crop insets applied.
func (e *ImageElement) VisibleRect() geometry.Rect {
	return e.crop.Apply(e.BoundingBox())
}

// Source returns the immutable source raster.
func (e *ImageElement) Source() image.Image {
	return e.source
}

// Src returns the persisted origin of the source raster.
func (e *ImageElement) Src() string {
	return e.src
}

// Processed returns the background-stripped raster consistent with the
// current (source, threshold) pair.
func (e *ImageElement) Processed() image.Image {
	return e.processed
}

// Threshold returns the background-removal threshold (0-100).
func (e *ImageElement) Threshold() int {
	return e.threshold
}

// SetThreshold updates the background-removal threshold and recomputes the
// processed raster synchronously. Values outside 0-100 are rejected and the
// prior threshold kept.
func (e *ImageElement) SetThreshold(t int) error {
	if t < 0 || t > 100 {
		return ErrOutOfRange
	}
	e.threshold = t
	e.processed = e.proc.Process(e.source, e.threshold)
	e.markChanged()
	return nil
}

// Crop returns the current crop insets.
func (e *ImageElement) Crop() CropRect {
	return e.crop
}

// SetCropSide sets one crop inset percentage. Values outside 0-50 are
// rejected rather than clamped, so a typo cannot silently become a crop.
// Opposing sides may still sum to 100, leaving an empty visible rectangle;
// that state is accepted and reversible.
func (e *ImageElement) SetCropSide(side CropSide, v int) error {
	if v < 0 || v > 50 {
		return ErrOutOfRange
	}
	switch side {
	case CropTop:
		e.crop.Top = v
	case CropRight:
		e.crop.Right = v
	case CropBottom:
		e.crop.Bottom = v
	case CropLeft:
		e.crop.Left = v
	default:
		return ErrOutOfRange
	}
	e.markChanged()
	return nil
}

// ResetCrop clears all four insets.
func (e *ImageElement) ResetCrop() {
	e.crop = CropRect{}
	e.markChanged()
}

// OpenPanel returns the currently open tool panel.
func (e *ImageElement) OpenPanel() ToolPanel {
	return e.panel
}

// TogglePanel opens the given panel, closing any other; toggling the open
// panel closes it.
func (e *ImageElement) TogglePanel(p ToolPanel) {
	if e.panel == p {
		e.panel = PanelNone
		return
	}
	e.panel = p
}

// ClosePanels closes any open tool panel.
func (e *ImageElement) ClosePanels() {
	e.panel = PanelNone
}

// Deselect implements Element; deselecting also closes any open panel.
func (e *ImageElement) Deselect() {
	e.base.Deselect()
	e.panel = PanelNone
}

// BeginResize starts the resize protocol, recording the original pointer
// down-point and a snapshot of the current size.
func (e *ImageElement) BeginResize(screen geometry.Point2D) {
	e.state = StateResizing
	e.resizeStart = screen
	e.sizeSnapshot = e.size
}

// ResizeTo applies the document-space delta between the current pointer
// position and the original down-point to the size snapshot. Both
// dimensions are floored at MinImageSize. The position is unchanged: the
// element grows from its fixed top-left corner.
func (e *ImageElement) ResizeTo(screen geometry.Point2D, zoom float64) {
	if e.state != StateResizing {
		return
	}
	dx, dy := geometry.ToDocumentDelta(screen.X-e.resizeStart.X, screen.Y-e.resizeStart.Y, zoom)
	w := e.sizeSnapshot.Width + dx
	h := e.sizeSnapshot.Height + dy
	if w < MinImageSize {
		w = MinImageSize
	}
	if h < MinImageSize {
		h = MinImageSize
	}
	e.size = geometry.Size{Width: w, Height: h}
	e.markChanged()
}

// EndResize returns to the selected state.
func (e *ImageElement) EndResize() {
	if e.state == StateResizing {
		e.state = StateSelected
	}
}

// ResizeHandleRect returns the corner resize affordance in document space.
func (e *ImageElement) ResizeHandleRect() geometry.Rect {
	box := e.BoundingBox()
	return geometry.NewRect(
		box.X+box.Width-ResizeHandleSize,
		box.Y+box.Height-ResizeHandleSize,
		ResizeHandleSize,
		ResizeHandleSize,
	)
}

// Foreground implements Element.
func (e *ImageElement) Foreground() bool {
	return e.state != StateIdle || e.panel != PanelNone
}

// ControlSurfaces returns the document-space rectangles of the element's
// visible control affordances, including the open tool panel.
func (e *ImageElement) ControlSurfaces() []geometry.Rect {
	if e.state == StateIdle && e.panel == PanelNone {
		return nil
	}
	box := e.BoundingBox()
	surfaces := []geometry.Rect{
		MoveHandleRect(box),
		e.ResizeHandleRect(),
	}
	if e.panel != PanelNone {
		// Tool panel renders directly below the element.
		surfaces = append(surfaces, geometry.NewRect(box.X, box.Y+box.Height, box.Width, 64))
	}
	return surfaces
}
