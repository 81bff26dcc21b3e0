// Package export captures the composed document and delivers it as a PDF
// file or a clipboard image. Capture happens at normalized zoom so screen
// magnification never leaks into output dimensions.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"sync"
	"time"
)

const (
	// PDFSupersample is the capture scale for PDF export.
	PDFSupersample = 4.0
	// ClipboardSupersample is the capture scale for clipboard copies.
	ClipboardSupersample = 3.0
	// SettleDelay is the pause between zoom normalization and capture,
	// giving the view time to re-render at the new scale.
	SettleDelay = 150 * time.Millisecond
)

var (
	// ErrBusy reports that a capture is already in flight.
	ErrBusy = errors.New("export: capture already in progress")
	// ErrCaptureFailed wraps rasterization failures.
	ErrCaptureFailed = errors.New("export: capture failed")
)

// Stage identifies a phase of the capture pipeline, for progress display.
type Stage int

const (
	StagePrepare Stage = iota
	StageCapture
	StageEncode
	StageDeliver
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePrepare:
		return "prepare"
	case StageCapture:
		return "capture"
	case StageEncode:
		return "encode"
	case StageDeliver:
		return "deliver"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// ZoomController lets the pipeline normalize the view zoom for capture
// and restore it afterwards.
type ZoomController interface {
	Zoom() float64
	SetZoom(z float64)
}

// Rasterizer renders the document at the given supersampling scale.
type Rasterizer func(scale float64) (*image.RGBA, error)

// ClipboardWriter places encoded PNG bytes on the system clipboard.
type ClipboardWriter func(png []byte) error

// Pipeline runs document captures one at a time.
type Pipeline struct {
	mu   sync.Mutex
	busy bool

	zoom   ZoomController
	raster Rasterizer
	clip   ClipboardWriter

	// OnStage, if set, is called as the pipeline advances. Called from
	// the capturing goroutine.
	OnStage func(Stage)

	settle time.Duration
	sleep  func(time.Duration)
}

// NewPipeline wires a capture pipeline. clip may be nil if clipboard
// delivery is never used.
func NewPipeline(zoom ZoomController, raster Rasterizer, clip ClipboardWriter) *Pipeline {
	return &Pipeline{
		zoom:   zoom,
		raster: raster,
		clip:   clip,
		settle: SettleDelay,
		sleep:  time.Sleep,
	}
}

// Busy reports whether a capture is in flight.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

func (p *Pipeline) acquire() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return ErrBusy
	}
	p.busy = true
	return nil
}

func (p *Pipeline) release() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}

func (p *Pipeline) stage(s Stage) {
	if p.OnStage != nil {
		p.OnStage(s)
	}
}

// capture normalizes zoom, waits for the view to settle and rasterizes
// at the given scale. The caller's zoom is restored on every path.
func (p *Pipeline) capture(scale float64) (*image.RGBA, error) {
	p.stage(StagePrepare)

	orig := p.zoom.Zoom()
	p.zoom.SetZoom(1.0)
	defer p.zoom.SetZoom(orig)

	p.sleep(p.settle)

	p.stage(StageCapture)
	img, err := p.raster(scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	return img, nil
}

// ExportPDF captures the document and writes a single-page PDF to w.
func (p *Pipeline) ExportPDF(w io.Writer) error {
	if err := p.acquire(); err != nil {
		return err
	}
	defer p.release()

	img, err := p.capture(PDFSupersample)
	if err != nil {
		return err
	}

	p.stage(StageEncode)
	if err := WritePDF(w, img); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	p.stage(StageDone)
	return nil
}

// CopyImage captures the document and places it on the clipboard as a
// lossless PNG.
func (p *Pipeline) CopyImage() error {
	if err := p.acquire(); err != nil {
		return err
	}
	defer p.release()

	if p.clip == nil {
		return errors.New("export: no clipboard writer configured")
	}

	img, err := p.capture(ClipboardSupersample)
	if err != nil {
		return err
	}

	p.stage(StageEncode)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}

	p.stage(StageDeliver)
	if err := p.clip(buf.Bytes()); err != nil {
		log.Printf("export: clipboard delivery failed: %v", err)
		return err
	}
	p.stage(StageDone)
	return nil
}
