package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"letterhead/internal/element"
	"letterhead/internal/export"
	"letterhead/internal/storage"
	"letterhead/pkg/geometry"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState(storage.NewMemStore())
	if s.Zoom() != 1.0 {
		t.Errorf("zoom = %v, want 1.0", s.Zoom())
	}
	if s.Margins() != DefaultMargins() {
		t.Errorf("margins = %+v, want defaults", s.Margins())
	}
	if got := s.PageSize(); got != (geometry.Size{Width: 794, Height: 1123}) {
		t.Errorf("page size = %+v", got)
	}
}

func TestSetZoomClampsAndEmits(t *testing.T) {
	s := NewState(storage.NewMemStore())

	var events int
	s.On(EventZoomChanged, func(interface{}) { events++ })

	s.SetZoom(5.0)
	if s.Zoom() != geometry.MaxZoom {
		t.Errorf("zoom = %v, want clamp to %v", s.Zoom(), geometry.MaxZoom)
	}
	s.SetZoom(0.01)
	if s.Zoom() != geometry.MinZoom {
		t.Errorf("zoom = %v, want clamp to %v", s.Zoom(), geometry.MinZoom)
	}
	if events != 2 {
		t.Errorf("events = %d, want 2", events)
	}

	s.SetZoom(geometry.MinZoom) // unchanged
	if events != 2 {
		t.Errorf("unchanged zoom emitted an event")
	}
}

func TestSetMarginsValidation(t *testing.T) {
	s := NewState(storage.NewMemStore())

	if err := s.SetMargins(Margins{Top: 201}); !errors.Is(err, element.ErrOutOfRange) {
		t.Errorf("margin 201 err = %v, want ErrOutOfRange", err)
	}
	if err := s.SetMargins(Margins{Left: -1}); !errors.Is(err, element.ErrOutOfRange) {
		t.Errorf("margin -1 err = %v, want ErrOutOfRange", err)
	}
	if s.Margins() != DefaultMargins() {
		t.Errorf("rejected margins must keep prior value, got %+v", s.Margins())
	}

	want := Margins{Top: 0, Right: 200, Bottom: 10, Left: 20}
	if err := s.SetMargins(want); err != nil {
		t.Fatalf("SetMargins: %v", err)
	}
	if s.Margins() != want {
		t.Errorf("margins = %+v, want %+v", s.Margins(), want)
	}
}

func TestFitZoom(t *testing.T) {
	s := NewState(storage.NewMemStore())
	s.FitZoom(834, 40)
	if s.Zoom() != 1.0 {
		t.Errorf("fit zoom = %v, want 1.0", s.Zoom())
	}
	s.FitZoom(5000, 40)
	if s.Zoom() != geometry.MaxFitZoom {
		t.Errorf("fit zoom = %v, want clamp to %v", s.Zoom(), geometry.MaxFitZoom)
	}
}

func TestElementChangesPersist(t *testing.T) {
	store := storage.NewMemStore()
	s := NewState(store)

	s.AddText("Letterhead GmbH")
	if _, ok := store.Load(storage.KeyTextElements); !ok {
		t.Fatal("text elements not persisted after AddText")
	}

	s2 := NewState(store)
	s2.Restore()
	texts := s2.Elements.Texts()
	if len(texts) != 1 || texts[0].Content() != "Letterhead GmbH" {
		t.Fatalf("restored texts = %+v", texts)
	}
}

func TestAddImageData(t *testing.T) {
	s := NewState(storage.NewMemStore())

	img, err := s.AddImageData(pngBytes(t, 80, 60))
	if err != nil {
		t.Fatalf("AddImageData: %v", err)
	}
	if img.Src() == "" {
		t.Error("image element has no stored source")
	}
	if img.Size().Width < element.MinImageSize || img.Size().Height < element.MinImageSize {
		t.Errorf("initial size below minimum: %+v", img.Size())
	}

	if _, err := s.AddImageData([]byte("not an image")); err == nil {
		t.Error("garbage bytes should fail to decode")
	}
}

func TestExportPDFWhileBusyLeavesFileAlone(t *testing.T) {
	s := NewState(storage.NewMemStore())

	started := make(chan struct{})
	unblock := make(chan struct{})
	s.pipeline = export.NewPipeline(s, func(scale float64) (*image.RGBA, error) {
		close(started)
		<-unblock
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 255
		}
		return img, nil
	}, func([]byte) error { return nil })

	path := filepath.Join(t.TempDir(), "out.pdf")
	done := make(chan error, 1)
	go func() { done <- s.ExportPDF(path) }()

	<-started
	if err := s.ExportPDF(path); !errors.Is(err, export.ErrBusy) {
		t.Fatalf("second export err = %v, want ErrBusy", err)
	}

	close(unblock)
	if err := <-done; err != nil {
		t.Fatalf("first export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("exported file does not start with %%PDF (%d bytes)", len(data))
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("export dir has %d entries, want only the PDF", len(entries))
	}
}

func TestRemoveSelected(t *testing.T) {
	s := NewState(storage.NewMemStore())
	if s.RemoveSelected() {
		t.Error("nothing selected, remove should be a no-op")
	}

	txt := s.AddText("bye")
	txt.Select()
	if !s.RemoveSelected() {
		t.Fatal("selected element not removed")
	}
	if s.Elements.Len() != 0 {
		t.Errorf("elements left: %d", s.Elements.Len())
	}
}
