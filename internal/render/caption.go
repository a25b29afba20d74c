package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"
)

// Placement selects where a share caption is composited relative to the pass.
// The choice is styling, not behavior: every placement shares the same wrap
// primitive and the same width bound.
type Placement int

const (
	PlacementHeader Placement = iota
	PlacementFooter
	PlacementOverlay
)

// ParsePlacement maps a request parameter to a Placement. Empty input means
// the default footer strip.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header":
		return PlacementHeader, nil
	case "footer", "":
		return PlacementFooter, nil
	case "overlay":
		return PlacementOverlay, nil
	default:
		return PlacementFooter, fmt.Errorf("unknown caption placement %q", s)
	}
}

func (p Placement) String() string {
	switch p {
	case PlacementHeader:
		return "header"
	case PlacementOverlay:
		return "overlay"
	default:
		return "footer"
	}
}

// CompositeCaption draws caption onto a copy of img at the given placement,
// word-wrapped to the available column width. An empty caption returns img
// unchanged. Header and footer placements extend the canvas by a strip;
// overlay keeps the original dimensions and dims one side of the pass.
func CompositeCaption(img image.Image, caption string, placement Placement) (image.Image, error) {
	if strings.TrimSpace(caption) == "" {
		return img, nil
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	fontSize := float64(w) / 28
	if fontSize < 14 {
		fontSize = 14
	}
	face, err := regularFace(fontSize)
	if err != nil {
		return nil, err
	}
	lineHeight := fontSize * 1.5
	margin := float64(w) / 25

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)

	if placement == PlacementOverlay {
		// Semi-transparent column over the right 40% of the pass.
		colW := float64(w) * 0.4
		lines := WrapText(measure, caption, colW-2*margin)

		dc := gg.NewContext(w, h)
		dc.DrawImage(img, 0, 0)
		dc.SetRGBA(0.04, 0.06, 0.13, 0.72)
		dc.DrawRectangle(float64(w)-colW, 0, colW, float64(h))
		dc.Fill()

		dc.SetFontFace(face)
		dc.SetRGB(1, 1, 1)
		blockH := lineHeight * float64(len(lines))
		top := (float64(h) - blockH) / 2
		for i, line := range lines {
			dc.DrawStringAnchored(line, float64(w)-colW/2, top+(float64(i)+0.5)*lineHeight, 0.5, 0.5)
		}
		return dc.Image(), nil
	}

	lines := WrapText(measure, caption, float64(w)-2*margin)
	stripH := int(lineHeight*float64(len(lines)) + 2*margin)

	dc := gg.NewContext(w, h+stripH)
	dc.SetRGB(0.06, 0.09, 0.16)
	dc.Clear()

	stripTop := 0.0
	if placement == PlacementHeader {
		dc.DrawImage(img, 0, stripH)
	} else {
		dc.DrawImage(img, 0, 0)
		stripTop = float64(h)
	}

	dc.SetFontFace(face)
	dc.SetRGB(0.95, 0.96, 0.99)
	for i, line := range lines {
		y := stripTop + margin + (float64(i)+0.5)*lineHeight
		dc.DrawStringAnchored(line, float64(w)/2, y, 0.5, 0.5)
	}
	return dc.Image(), nil
}
