package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"letterhead/internal/element"
	"letterhead/internal/imaging"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return imaging.EncodeDataURL(buf.Bytes())
}

func TestSaveLoadElements(t *testing.T) {
	store := NewMemStore()

	c := element.NewCollection()
	c.AddText("With kind regards")
	img := c.AddImage(pngDataURL(t, 60, 60), white(60, 60))
	img.SetThreshold(25)

	if err := SaveElements(store, c); err != nil {
		t.Fatalf("SaveElements: %v", err)
	}

	loaded := element.NewCollection()
	LoadElements(store, loaded)

	if loaded.Len() != 2 {
		t.Fatalf("loaded %d elements, want 2", loaded.Len())
	}
	if got := loaded.Texts()[0].Content(); got != "With kind regards" {
		t.Errorf("text content = %q", got)
	}
	e := loaded.Images()[0]
	if e.Threshold() != 25 {
		t.Errorf("threshold = %d, want 25", e.Threshold())
	}
	if e.Source() == nil || e.Source().Bounds().Dx() != 60 {
		t.Error("image source not restored from data URL")
	}
}

func white(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestLoadElementsMissingKeys(t *testing.T) {
	c := element.NewCollection()
	LoadElements(NewMemStore(), c)
	if c.Len() != 0 {
		t.Errorf("missing records must load as empty, len = %d", c.Len())
	}
}

func TestLoadElementsMalformedRecords(t *testing.T) {
	store := NewMemStore()
	store.Save(KeyTextElements, "{not json")
	store.Save(KeyImageElements, "42")

	c := element.NewCollection()
	LoadElements(store, c) // must not panic or fail
	if c.Len() != 0 {
		t.Errorf("malformed records must load as empty, len = %d", c.Len())
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s := OpenPath(path)
	if err := s.Save("k", "v"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again := OpenPath(path)
	if v, ok := again.Load("k"); !ok || v != "v" {
		t.Errorf("Load = %q, %v", v, ok)
	}
}

func TestFileStoreUnreadableDegradesToEmpty(t *testing.T) {
	s := OpenPath(filepath.Join(t.TempDir(), "missing", "state.json"))
	if _, ok := s.Load("anything"); ok {
		t.Error("expected empty store")
	}
}
