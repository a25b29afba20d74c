package render

import (
	"image"
	"testing"

	"github.com/fogleman/gg"
)

func blankPass(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc.Image()
}

// TestCompositeCaptionHeaderFooterExtend verifies strip placements grow the
// canvas vertically and keep the width.
func TestCompositeCaptionHeaderFooterExtend(t *testing.T) {
	pass := blankPass(800, 500)

	for _, placement := range []Placement{PlacementHeader, PlacementFooter} {
		got, err := CompositeCaption(pass, "Pass secured. Time to level up.", placement)
		if err != nil {
			t.Fatalf("CompositeCaption(%v) error = %v", placement, err)
		}
		b := got.Bounds()
		if b.Dx() != 800 {
			t.Errorf("%v: width = %d, want 800", placement, b.Dx())
		}
		if b.Dy() <= 500 {
			t.Errorf("%v: height = %d, want > 500", placement, b.Dy())
		}
	}
}

// TestCompositeCaptionOverlayKeepsSize verifies the overlay placement leaves
// dimensions unchanged.
func TestCompositeCaptionOverlayKeepsSize(t *testing.T) {
	pass := blankPass(800, 500)

	got, err := CompositeCaption(pass, "Registered and ready.", PlacementOverlay)
	if err != nil {
		t.Fatalf("CompositeCaption() error = %v", err)
	}
	if b := got.Bounds(); b.Dx() != 800 || b.Dy() != 500 {
		t.Errorf("overlay changed dimensions: %dx%d", b.Dx(), b.Dy())
	}
}

// TestCompositeCaptionEmptyPassthrough verifies empty captions return the
// image untouched.
func TestCompositeCaptionEmptyPassthrough(t *testing.T) {
	pass := blankPass(400, 250)
	got, err := CompositeCaption(pass, "   ", PlacementFooter)
	if err != nil {
		t.Fatal(err)
	}
	if got != pass {
		t.Error("empty caption should return the original image")
	}
}

// TestCompositeCaptionLongCaptionGrowsStrip verifies longer captions wrap
// into more lines and a taller strip.
func TestCompositeCaptionLongCaptionGrowsStrip(t *testing.T) {
	pass := blankPass(800, 500)
	short, err := CompositeCaption(pass, "Short one.", PlacementFooter)
	if err != nil {
		t.Fatal(err)
	}
	long, err := CompositeCaption(pass,
		"My workshop pass is ready and I am bringing everyone I know because this is going to be the event of the year, no exaggeration at all.",
		PlacementFooter)
	if err != nil {
		t.Fatal(err)
	}
	if long.Bounds().Dy() <= short.Bounds().Dy() {
		t.Errorf("long caption strip (%d) not taller than short (%d)",
			long.Bounds().Dy(), short.Bounds().Dy())
	}
}

// TestParsePlacement tests placement parameter parsing.
func TestParsePlacement(t *testing.T) {
	tests := []struct {
		in      string
		want    Placement
		wantErr bool
	}{
		{in: "header", want: PlacementHeader},
		{in: "footer", want: PlacementFooter},
		{in: "", want: PlacementFooter},
		{in: "Overlay", want: PlacementOverlay},
		{in: "sideways", want: PlacementFooter, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePlacement(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePlacement(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePlacement(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
