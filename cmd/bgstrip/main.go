// Command bgstrip removes the light background from an image and writes
// the result as a PNG with transparency.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"letterhead/internal/imaging"
)

func main() {
	inPath := flag.String("in", "", "Path to input image (PNG, JPEG, or TIFF)")
	outPath := flag.String("out", "out.png", "Path to output PNG")
	threshold := flag.Int("threshold", -1, "Brightness threshold 0-100; -1 picks one from the image")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("Usage: bgstrip -in <path> [-out out.png] [-threshold 0-100]")
		os.Exit(1)
	}

	img, err := imaging.Load(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

	t := *threshold
	if t < 0 {
		t = imaging.SuggestThreshold(img)
		fmt.Printf("Suggested threshold: %d\n", t)
	}
	if t > 100 {
		fmt.Fprintf(os.Stderr, "Threshold %d out of range 0-100\n", t)
		os.Exit(1)
	}

	result := imaging.RemoveBackground(img, t)

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (threshold %d)\n", *outPath, t)
}
