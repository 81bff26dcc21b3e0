// Package app provides application state, configuration, and events.
package app

import (
	"bytes"
	"fmt"
	goimage "image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"letterhead/internal/clipboard"
	"letterhead/internal/element"
	"letterhead/internal/export"
	"letterhead/internal/imaging"
	"letterhead/internal/render"
	"letterhead/internal/storage"
	"letterhead/pkg/geometry"
)

// Page dimensions in document pixels, A4 at 96 DPI.
const (
	PageWidth  = 794
	PageHeight = 1123
)

// MaxMargin bounds each page margin in document pixels.
const MaxMargin = 200

// Margins holds the page margins in document pixels. They pad the text
// layout area; overlay elements ignore them.
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// DefaultMargins is roughly 15 mm at 96 DPI.
func DefaultMargins() Margins {
	return Margins{Top: 57, Right: 57, Bottom: 57, Left: 57}
}

func (m Margins) validate() error {
	for _, v := range []int{m.Top, m.Right, m.Bottom, m.Left} {
		if v < 0 || v > MaxMargin {
			return fmt.Errorf("margin %d out of range 0..%d: %w", v, MaxMargin, element.ErrOutOfRange)
		}
	}
	return nil
}

// EventType identifies different application events.
type EventType int

const (
	EventElementsChanged EventType = iota
	EventZoomChanged
	EventMarginsChanged
	EventSelectionChanged
	EventExportStarted
	EventExportFinished
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the document being edited: zoom, margins, and the overlay
// element collection, with persistence wired underneath.
type State struct {
	mu sync.RWMutex

	zoom    float64
	margins Margins

	Elements *element.Collection
	Router   *element.Router

	store    storage.Store
	pipeline *export.Pipeline

	listeners map[EventType][]EventListener
}

// NewState creates application state persisting to the given store.
func NewState(store storage.Store) *State {
	s := &State{
		zoom:      1.0,
		margins:   DefaultMargins(),
		Elements:  element.NewCollection(),
		store:     store,
		listeners: make(map[EventType][]EventListener),
	}
	s.Router = element.NewRouter(s.Elements)
	s.pipeline = export.NewPipeline(s, s.rasterize, clipboard.Write)

	s.Elements.OnChange(func() {
		if err := storage.SaveElements(s.store, s.Elements); err != nil {
			fmt.Fprintf(os.Stderr, "persist elements: %v\n", err)
		}
		s.Emit(EventElementsChanged, nil)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Restore loads persisted elements from the store.
func (s *State) Restore() {
	storage.LoadElements(s.store, s.Elements)
}

// Zoom returns the current view zoom factor.
func (s *State) Zoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zoom
}

// SetZoom clamps and applies a view zoom factor.
func (s *State) SetZoom(z float64) {
	z = geometry.ClampZoom(z)
	s.mu.Lock()
	changed := s.zoom != z
	s.zoom = z
	s.mu.Unlock()
	if changed {
		s.Emit(EventZoomChanged, z)
	}
}

// FitZoom sets the zoom so the page width fits the given viewport width.
func (s *State) FitZoom(viewportWidth, padding float64) {
	s.SetZoom(geometry.FitScale(viewportWidth, padding, PageWidth))
}

// Margins returns the current page margins.
func (s *State) Margins() Margins {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.margins
}

// SetMargins applies new page margins. Out-of-range values are rejected
// and the previous margins kept.
func (s *State) SetMargins(m Margins) error {
	if err := m.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.margins = m
	s.mu.Unlock()
	s.Emit(EventMarginsChanged, m)
	return nil
}

// PageSize returns the document page size in document pixels.
func (s *State) PageSize() geometry.Size {
	return geometry.Size{Width: PageWidth, Height: PageHeight}
}

// AddText inserts a text element at the default offset.
func (s *State) AddText(content string) *element.TextElement {
	return s.Elements.AddText(content)
}

// AddImageData decodes raw image bytes and inserts an image element. The
// pixel data is stored losslessly for later background removal.
func (s *State) AddImageData(data []byte) (*element.ImageElement, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return s.Elements.AddImage(imaging.EncodeDataURL(buf.Bytes()), img), nil
}

// AddImageFile loads an image file and inserts an image element.
func (s *State) AddImageFile(path string) (*element.ImageElement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.AddImageData(data)
}

// RemoveSelected deletes the selected element, if any.
func (s *State) RemoveSelected() bool {
	sel := s.Elements.Selected()
	if sel == nil {
		return false
	}
	return s.Elements.Remove(sel.ID())
}

func (s *State) rasterize(scale float64) (*goimage.RGBA, error) {
	page := render.PageFromElements(s.PageSize(), s.Elements)
	return render.Rasterize(page, scale)
}

// ExportPDF captures the document and writes it to a PDF file. While a
// capture is already in flight it returns ErrBusy without touching the
// file system, so a concurrent call can never disturb the export in
// progress. The capture lands in a temp file next to path and replaces
// path only on success.
func (s *State) ExportPDF(path string) error {
	if s.pipeline.Busy() {
		return export.ErrBusy
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".letterhead-*.pdf")
	if err != nil {
		return err
	}
	tmp := f.Name()
	s.Emit(EventExportStarted, "pdf")
	err = s.pipeline.ExportPDF(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
	}
	s.Emit(EventExportFinished, err)
	return err
}

// CopyImage captures the document and places it on the clipboard.
func (s *State) CopyImage() error {
	s.Emit(EventExportStarted, "clipboard")
	err := s.pipeline.CopyImage()
	s.Emit(EventExportFinished, err)
	return err
}

// Exporting reports whether a capture is in flight.
func (s *State) Exporting() bool {
	return s.pipeline.Busy()
}
