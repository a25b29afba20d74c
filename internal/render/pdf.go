package render

import (
	"fmt"
	"image"

	"github.com/signintech/gopdf"
)

// PassPDF lays the rendered card onto a single A4 landscape page, scaled to
// fit inside the margins with its aspect ratio preserved.
func PassPDF(img image.Image) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4Landscape})
	pdf.AddPage()

	const margin = 28.0
	pageW := gopdf.PageSizeA4Landscape.W - 2*margin
	pageH := gopdf.PageSizeA4Landscape.H - 2*margin

	b := img.Bounds()
	imgW := float64(b.Dx())
	imgH := float64(b.Dy())

	ratio := pageW / imgW
	if r := pageH / imgH; r < ratio {
		ratio = r
	}
	w := imgW * ratio
	h := imgH * ratio
	x := margin + (pageW-w)/2
	y := margin + (pageH-h)/2

	if err := pdf.ImageFrom(img, x, y, &gopdf.Rect{W: w, H: h}); err != nil {
		return nil, fmt.Errorf("failed to place pass image in PDF: %w", err)
	}
	return pdf.GetBytesPdf(), nil
}
