// Command renderdoc renders a stored letterhead document to a PDF or PNG
// without opening the editor.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"letterhead/internal/element"
	"letterhead/internal/export"
	"letterhead/internal/render"
	"letterhead/internal/storage"
	"letterhead/pkg/geometry"
)

func main() {
	statePath := flag.String("state", "", "Path to a saved state file (defaults to the editor's)")
	outPath := flag.String("out", "letterhead.pdf", "Output file (.pdf or .png)")
	scale := flag.Float64("scale", export.PDFSupersample, "Supersampling scale")
	flag.Parse()

	var store storage.Store
	if *statePath != "" {
		store = storage.OpenPath(*statePath)
	} else {
		store = storage.Open()
	}

	elements := element.NewCollection()
	storage.LoadElements(store, elements)
	fmt.Printf("Loaded %d elements\n", elements.Len())

	page := render.PageFromElements(geometry.Size{Width: 794, Height: 1123}, elements)
	img, err := render.Rasterize(page, *scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	switch filepath.Ext(*outPath) {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = export.WritePDF(f, img)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d at %gx)\n", *outPath, img.Bounds().Dx(), img.Bounds().Dy(), *scale)
}
