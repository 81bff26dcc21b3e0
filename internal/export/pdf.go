package export

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
)

// JPEGQuality is the lossy quality used for the page bitmap inside the PDF.
const JPEGQuality = 90

// jpegXObject embeds an RGB bitmap as a DCTDecode image stream.
type jpegXObject struct {
	img image.Image
}

func (x *jpegXObject) Subtype() pdf.Name {
	return pdf.Name("Image")
}

func (x *jpegXObject) Embed(rm *pdf.ResourceManager) (pdf.Native, pdf.Unused, error) {
	var zero pdf.Unused

	b := x.img.Bounds()
	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(b.Dx()),
		"Height":           pdf.Integer(b.Dy()),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
	}

	ref := rm.Out.Alloc()
	stream, err := rm.Out.OpenStream(ref, dict)
	if err != nil {
		return nil, zero, fmt.Errorf("open image stream: %w", err)
	}
	if err := jpeg.Encode(stream, x.img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		stream.Close()
		return nil, zero, err
	}
	if err := stream.Close(); err != nil {
		return nil, zero, err
	}
	return ref, zero, nil
}

// WritePDF writes the captured page bitmap as a single-page A4 PDF. The
// bitmap fills the whole page; supersampling keeps it sharp at print
// resolution despite the JPEG recompression.
func WritePDF(w io.Writer, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return errors.New("export: empty capture")
	}

	page, err := document.WriteSinglePage(w, document.A4, pdf.V2_0, nil)
	if err != nil {
		return err
	}

	paper := document.A4
	page.PushGraphicsState()
	page.Transform(matrix.Scale(paper.URx-paper.LLx, paper.URy-paper.LLy))
	page.DrawXObject(&jpegXObject{img: img})
	page.PopGraphicsState()

	return page.Close()
}
