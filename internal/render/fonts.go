package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func parseFonts() {
	regularFont, fontErr = opentype.Parse(goregular.TTF)
	if fontErr != nil {
		return
	}
	boldFont, fontErr = opentype.Parse(gobold.TTF)
}

// regularFace returns a Go Regular face at the given point size.
// Fonts are embedded so rendering needs no filesystem access.
func regularFace(size float64) (font.Face, error) {
	fontOnce.Do(parseFonts)
	if fontErr != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", fontErr)
	}
	return opentype.NewFace(regularFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// boldFace returns a Go Bold face at the given point size.
func boldFace(size float64) (font.Face, error) {
	fontOnce.Do(parseFonts)
	if fontErr != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", fontErr)
	}
	return opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
