package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

type fakeZoom struct {
	z       float64
	history []float64
}

func (f *fakeZoom) Zoom() float64 { return f.z }
func (f *fakeZoom) SetZoom(z float64) {
	f.z = z
	f.history = append(f.history, z)
}

func solidRaster(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func newTestPipeline(raster Rasterizer, clip ClipboardWriter) (*Pipeline, *fakeZoom) {
	z := &fakeZoom{z: 1.5}
	p := NewPipeline(z, raster, clip)
	p.sleep = func(time.Duration) {}
	return p, z
}

func TestExportPDFWritesPDF(t *testing.T) {
	var seenScale float64
	var p *Pipeline
	var z *fakeZoom
	p, z = newTestPipeline(func(scale float64) (*image.RGBA, error) {
		seenScale = scale
		if got := z.z; got != 1.0 {
			t.Errorf("zoom during capture = %v, want 1.0", got)
		}
		return solidRaster(40, 56), nil
	}, nil)

	var buf bytes.Buffer
	if err := p.ExportPDF(&buf); err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if seenScale != PDFSupersample {
		t.Errorf("capture scale = %v, want %v", seenScale, PDFSupersample)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %.8q", buf.Bytes())
	}
	if z.z != 1.5 {
		t.Errorf("zoom after export = %v, want restored 1.5", z.z)
	}
}

func TestExportPDFRestoresZoomOnFailure(t *testing.T) {
	p, z := newTestPipeline(func(float64) (*image.RGBA, error) {
		return nil, errors.New("render exploded")
	}, nil)

	var buf bytes.Buffer
	err := p.ExportPDF(&buf)
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("err = %v, want ErrCaptureFailed", err)
	}
	if z.z != 1.5 {
		t.Errorf("zoom after failed export = %v, want restored 1.5", z.z)
	}
	if p.Busy() {
		t.Error("pipeline still busy after failure")
	}
}

func TestPipelineRejectsConcurrentCapture(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	p, _ := newTestPipeline(func(float64) (*image.RGBA, error) {
		close(started)
		<-unblock
		return solidRaster(4, 4), nil
	}, nil)

	done := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		done <- p.ExportPDF(&buf)
	}()

	<-started
	var buf bytes.Buffer
	if err := p.ExportPDF(&buf); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent export err = %v, want ErrBusy", err)
	}

	close(unblock)
	if err := <-done; err != nil {
		t.Fatalf("first export: %v", err)
	}
	if p.Busy() {
		t.Error("pipeline still busy after completion")
	}
}

func TestCopyImageDeliversPNG(t *testing.T) {
	var delivered []byte
	var seenScale float64
	p, z := newTestPipeline(func(scale float64) (*image.RGBA, error) {
		seenScale = scale
		return solidRaster(10, 10), nil
	}, func(data []byte) error {
		delivered = data
		return nil
	})

	if err := p.CopyImage(); err != nil {
		t.Fatalf("CopyImage: %v", err)
	}
	if seenScale != ClipboardSupersample {
		t.Errorf("capture scale = %v, want %v", seenScale, ClipboardSupersample)
	}
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(delivered, pngMagic) {
		t.Errorf("clipboard payload is not PNG: %x", delivered[:min(8, len(delivered))])
	}
	if z.z != 1.5 {
		t.Errorf("zoom after copy = %v, want restored 1.5", z.z)
	}
}

func TestCopyImageClipboardFailure(t *testing.T) {
	unavailable := errors.New("no clipboard tool")
	p, z := newTestPipeline(func(float64) (*image.RGBA, error) {
		return solidRaster(4, 4), nil
	}, func([]byte) error {
		return unavailable
	})

	err := p.CopyImage()
	if !errors.Is(err, unavailable) {
		t.Errorf("err = %v, want clipboard error", err)
	}
	if errors.Is(err, ErrCaptureFailed) {
		t.Error("clipboard failure must be distinct from capture failure")
	}
	if z.z != 1.5 {
		t.Errorf("zoom not restored: %v", z.z)
	}
	if p.Busy() {
		t.Error("pipeline still busy")
	}
}

func TestPipelineStages(t *testing.T) {
	p, _ := newTestPipeline(func(float64) (*image.RGBA, error) {
		return solidRaster(4, 4), nil
	}, func([]byte) error { return nil })

	var stages []Stage
	p.OnStage = func(s Stage) { stages = append(stages, s) }

	if err := p.CopyImage(); err != nil {
		t.Fatalf("CopyImage: %v", err)
	}
	want := []Stage{StagePrepare, StageCapture, StageEncode, StageDeliver, StageDone}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage[%d] = %v, want %v", i, stages[i], want[i])
		}
	}
}

func TestWritePDFRejectsEmptyCapture(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil); err == nil {
		t.Error("nil image should fail")
	}
	if err := WritePDF(&buf, image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("empty image should fail")
	}
}
