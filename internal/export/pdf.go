package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// PDFWriter collects page bitmaps into an A4 portrait document. Each bitmap
// spans the page width and keeps its aspect ratio.
type PDFWriter struct {
	pdf   *fpdf.Fpdf
	pages int
}

func NewPDFWriter() *PDFWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &PDFWriter{pdf: pdf}
}

// AddPage appends img as a new page. A page that cannot be added leaves the
// document as it was, so later pages still go in.
func (w *PDFWriter) AddPage(img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("encode page: empty bitmap %dx%d", b.Dx(), b.Dy())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, toNRGBA(img)); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}

	name := "page-" + strconv.Itoa(w.pages+1)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opts, &buf)
	if err := w.pdf.Error(); err != nil {
		w.pdf.ClearError()
		return fmt.Errorf("register %s: %w", name, err)
	}

	pageW, _ := w.pdf.GetPageSize()
	h := pageW * float64(b.Dy()) / float64(b.Dx())

	w.pdf.AddPage()
	w.pdf.ImageOptions(name, 0, 0, pageW, h, false, opts, 0, "")
	if err := w.pdf.Error(); err != nil {
		w.pdf.ClearError()
		return fmt.Errorf("place %s: %w", name, err)
	}
	w.pages++
	return nil
}

// toNRGBA converts img to 8 bits per channel; fpdf rejects 16-bit PNGs.
func toNRGBA(img image.Image) image.Image {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.Gray, *image.Paletted:
		return img
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

// Pages is the number of pages added so far.
func (w *PDFWriter) Pages() int { return w.pages }

// Bytes renders the finished document.
func (w *PDFWriter) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
