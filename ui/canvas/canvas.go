// Package canvas provides the zoomable document canvas with overlay
// element interaction.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"letterhead/internal/app"
	"letterhead/internal/element"
	"letterhead/internal/render"
	"letterhead/pkg/geometry"
)

const (
	zoomStep   = 1.25
	fitPadding = 40
)

// DocumentCanvas displays the page at the current zoom and routes pointer
// gestures to the overlay elements.
type DocumentCanvas struct {
	widget.BaseWidget

	state *app.State

	raster  *fynecanvas.Raster
	scroll  *zoomScroll
	content *pageContent

	pageSize fyne.Size

	// Interaction state
	gestureActive bool
	panning       bool

	fitOnResize    bool
	lastScrollSize fyne.Size
}

// NewDocumentCanvas creates a canvas bound to the application state.
func NewDocumentCanvas(st *app.State) *DocumentCanvas {
	dc := &DocumentCanvas{state: st}

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.content = newPageContent(dc, dc.raster)
	dc.scroll = newZoomScroll(dc.content, dc)

	st.On(app.EventZoomChanged, func(interface{}) {
		dc.updateContentSize()
	})
	st.On(app.EventElementsChanged, func(interface{}) {
		dc.Refresh()
	})
	st.On(app.EventMarginsChanged, func(interface{}) {
		dc.Refresh()
	})

	dc.updateContentSize()
	dc.ExtendBaseWidget(dc)
	return dc
}

// Container returns the scrollable canvas for embedding in layouts.
func (dc *DocumentCanvas) Container() fyne.CanvasObject {
	return dc.scroll
}

// Refresh redraws the page.
func (dc *DocumentCanvas) Refresh() {
	dc.raster.Refresh()
}

// ZoomIn increases the view zoom one step.
func (dc *DocumentCanvas) ZoomIn() {
	dc.state.SetZoom(dc.state.Zoom() * zoomStep)
}

// ZoomOut decreases the view zoom one step.
func (dc *DocumentCanvas) ZoomOut() {
	dc.state.SetZoom(dc.state.Zoom() / zoomStep)
}

// FitToViewport sets the zoom so the page width fills the visible area.
func (dc *DocumentCanvas) FitToViewport() {
	size := dc.scroll.Size()
	if size.Width <= 0 {
		return
	}
	dc.state.FitZoom(float64(size.Width), fitPadding)
}

// SetFitOnResize enables re-fitting the page when the viewport resizes.
func (dc *DocumentCanvas) SetFitOnResize(fit bool) {
	dc.fitOnResize = fit
	if fit {
		dc.FitToViewport()
	}
}

// updateContentSize resizes the raster to the zoomed page.
func (dc *DocumentCanvas) updateContentSize() {
	zoom := dc.state.Zoom()
	dc.pageSize = fyne.NewSize(
		float32(app.PageWidth*zoom),
		float32(app.PageHeight*zoom),
	)
	dc.raster.SetMinSize(dc.pageSize)
	dc.raster.Resize(dc.pageSize)
	if dc.content != nil {
		dc.content.Resize(dc.pageSize)
		dc.content.Refresh()
	}
	dc.raster.Refresh()
	if dc.scroll != nil {
		dc.scroll.Refresh()
	}
}

// draw renders the page bitmap and the interaction chrome. Zoom is read
// at draw time so captures that rescale the view render consistently.
func (dc *DocumentCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output)

	zoom := dc.state.Zoom()

	// Feed measured text boxes back so hit-testing matches what is drawn.
	for _, t := range dc.state.Elements.Texts() {
		if sz, err := render.MeasureText(t.Content(), render.DefaultFontSize); err == nil {
			t.SetMeasuredSize(sz)
		}
	}

	page := render.PageFromElements(dc.state.PageSize(), dc.state.Elements)
	img, err := render.Rasterize(page, zoom)
	if err == nil {
		blitPage(output, img)
	}

	drawMarginGuides(output, dc.state.Margins(), zoom)

	for _, el := range dc.state.Elements.All() {
		drawElementChrome(output, el, zoom)
	}

	return output
}

// docAt converts a content-local position to document coordinates.
func (dc *DocumentCanvas) docAt(pos fyne.Position) geometry.Point2D {
	zoom := dc.state.Zoom()
	return geometry.Point2D{
		X: float64(pos.X) / zoom,
		Y: float64(pos.Y) / zoom,
	}
}

func (dc *DocumentCanvas) screenAt(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

// zoomScroll wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *DocumentCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *DocumentCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Wheel zooms the page, except while an element gesture is active
	if zs.canvas.state.Router.Owner() == element.OwnerElement {
		return
	}
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// pageContent wraps the raster to handle mouse events.
type pageContent struct {
	widget.BaseWidget
	canvas *DocumentCanvas
	raster *fynecanvas.Raster
}

func newPageContent(dc *DocumentCanvas, raster *fynecanvas.Raster) *pageContent {
	pc := &pageContent{canvas: dc, raster: raster}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pageContent) CreateRenderer() fyne.WidgetRenderer {
	return &pageContentRenderer{content: pc}
}

func (pc *pageContent) MinSize() fyne.Size {
	return pc.raster.MinSize()
}

// Tapped selects the element under the pointer, or clears the selection
// when the click lands on empty page.
func (pc *pageContent) Tapped(ev *fyne.PointEvent) {
	size := pc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	dc := pc.canvas
	dc.state.Router.PointerDown(dc.docAt(ev.Position), dc.screenAt(ev.Position))
	dc.state.Router.PointerUp()
	dc.state.Emit(app.EventSelectionChanged, dc.state.Elements.Selected())
	dc.Refresh()
}

func (pc *pageContent) Dragged(ev *fyne.DragEvent) {
	dc := pc.canvas

	if !dc.gestureActive {
		dc.gestureActive = true
		start := fyne.Position{
			X: ev.Position.X - ev.Dragged.DX,
			Y: ev.Position.Y - ev.Dragged.DY,
		}
		dc.state.Router.PointerDown(dc.docAt(start), dc.screenAt(start))
		if dc.state.Router.Owner() != element.OwnerElement {
			dc.panning = dc.state.Router.AcquireDocument()
		}
		dc.state.Emit(app.EventSelectionChanged, dc.state.Elements.Selected())
	}

	if dc.state.Router.Owner() == element.OwnerElement {
		dc.state.Router.PointerMove(dc.screenAt(ev.Position), dc.state.Zoom())
		dc.Refresh()
		return
	}

	if dc.panning {
		off := dc.scroll.scroll.Offset
		off.X -= ev.Dragged.DX
		off.Y -= ev.Dragged.DY
		if off.X < 0 {
			off.X = 0
		}
		if off.Y < 0 {
			off.Y = 0
		}
		dc.scroll.scroll.Offset = off
		dc.scroll.scroll.Refresh()
	}
}

func (pc *pageContent) DragEnd() {
	dc := pc.canvas
	dc.state.Router.PointerUp()
	if dc.panning {
		dc.state.Router.Release()
		dc.panning = false
	}
	dc.gestureActive = false
	dc.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (pc *pageContent) MouseIn(ev *desktop.MouseEvent) {
	pc.MouseMoved(ev)
}

// MouseMoved highlights the text element under the pointer.
func (pc *pageContent) MouseMoved(ev *desktop.MouseEvent) {
	dc := pc.canvas
	if dc.state.Router.PointerHover(dc.docAt(ev.Position)) {
		dc.Refresh()
	}
}

// MouseOut clears any hover highlight.
func (pc *pageContent) MouseOut() {
	dc := pc.canvas
	if dc.state.Router.PointerHover(geometry.Point2D{X: -1, Y: -1}) {
		dc.Refresh()
	}
}

func (pc *pageContent) Scrolled(ev *fyne.ScrollEvent) {
	if pc.canvas.state.Router.Owner() == element.OwnerElement {
		return
	}
	if ev.Scrolled.DY > 0 {
		pc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		pc.canvas.ZoomOut()
	}
}

type pageContentRenderer struct {
	content *pageContent
}

func (r *pageContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *pageContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *pageContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *pageContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *pageContentRenderer) Destroy() {}

// CreateRenderer implements fyne.Widget.
func (dc *DocumentCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &documentCanvasRenderer{canvas: dc}
}

type documentCanvasRenderer struct {
	canvas *DocumentCanvas
}

func (r *documentCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
	if r.canvas.fitOnResize && size.Width > 0 && size != r.canvas.lastScrollSize {
		r.canvas.lastScrollSize = size
		r.canvas.FitToViewport()
	}
}

func (r *documentCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *documentCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *documentCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *documentCanvasRenderer) Destroy() {}
