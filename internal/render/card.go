package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"

	"workshoppass/internal/domain/student"
)

// Base card geometry at scale 1. Exports multiply by CardOptions.Scale for
// print quality.
const (
	BaseWidth  = 1000
	BaseHeight = 625

	// DefaultScale is the upscale factor used when none is given.
	DefaultScale = 2

	detailsPaneRatio = 0.62
)

// DefaultBrand is the branding line drawn above the workshop title.
const DefaultBrand = "WORKSHOP PASS"

// CardOptions controls pass card rendering.
type CardOptions struct {
	Scale        int         // upscale factor; values < 1 become DefaultScale
	Illustration image.Image // nil substitutes the placeholder pane
	Brand        string      // empty uses DefaultBrand
}

// Card renders the two-pane pass visual for a student record: details pane
// on the left (branding, workshop title, attendee name, date, QR of the pass
// URL), illustration pane on the right.
// PRE: rec has at least a Name
// POST: Returns a bitmap of BaseWidth*Scale x BaseHeight*Scale pixels
func Card(rec student.Record, opts CardOptions) (image.Image, error) {
	scale := opts.Scale
	if scale < 1 {
		scale = DefaultScale
	}
	brand := opts.Brand
	if brand == "" {
		brand = DefaultBrand
	}

	w := BaseWidth * scale
	h := BaseHeight * scale
	paneX := int(float64(w) * detailsPaneRatio)
	s := float64(scale)

	dc := gg.NewContext(w, h)
	dc.SetRGB(0.06, 0.09, 0.16)
	dc.Clear()

	// Illustration pane, placeholder when no image made it here.
	ill := opts.Illustration
	if ill == nil {
		ill = Placeholder(w-paneX, h, initials(rec.Name))
	}
	fitted := imaging.Fill(ill, w-paneX, h, imaging.Center, imaging.Lanczos)
	dc.DrawImage(fitted, paneX, 0)

	// Details pane.
	margin := 52 * s

	brandFace, err := regularFace(20 * s)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(brandFace)
	dc.SetRGB(0.55, 0.65, 0.95)
	dc.DrawString(spaced(brand), margin, margin+20*s)

	if rec.Workshop != "" {
		titleFace, err := boldFace(34 * s)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(titleFace)
		dc.SetRGB(0.92, 0.94, 0.99)
		for i, line := range WrapText(dc, rec.Workshop, float64(paneX)-2*margin) {
			dc.DrawString(line, margin, margin+(80+float64(i)*44)*s)
		}
	}

	nameFace, err := boldFace(52 * s)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(nameFace)
	dc.SetRGB(1, 1, 1)
	nameY := float64(h)*0.5 + 16*s
	for i, line := range WrapText(dc, rec.Name, float64(paneX)-2*margin) {
		dc.DrawString(line, margin, nameY+float64(i)*64*s)
	}

	if rec.Date != "" {
		dateFace, err := regularFace(24 * s)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(dateFace)
		dc.SetRGB(0.7, 0.75, 0.85)
		dc.DrawString(rec.Date, margin, float64(h)*0.5+70*s)
	}

	// QR of the pass URL so the pass is scannable at the door.
	if rec.PassURL != "" {
		qr, err := qrcode.New(rec.PassURL, qrcode.Medium)
		if err != nil {
			return nil, err
		}
		qr.BackgroundColor = color.RGBA{R: 15, G: 23, B: 41, A: 255}
		qr.ForegroundColor = color.White
		qrSize := 110 * scale
		dc.DrawImage(qr.Image(qrSize), int(margin), h-qrSize-int(margin))

		urlFace, err := regularFace(16 * s)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(urlFace)
		dc.SetRGB(0.45, 0.52, 0.65)
		dc.DrawString(rec.PassURL, margin+float64(110*scale)+16*s, float64(h)-margin-8*s)
	}

	return dc.Image(), nil
}

// Placeholder renders the substitute illustration pane used when the remote
// asset never loaded: a flat slate with the attendee's initials.
func Placeholder(w, h int, initials string) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetRGB(0.13, 0.18, 0.3)
	dc.Clear()

	if initials != "" {
		face, err := boldFace(float64(h) / 3)
		if err == nil {
			dc.SetFontFace(face)
			dc.SetRGBA(1, 1, 1, 0.18)
			dc.DrawStringAnchored(initials, float64(w)/2, float64(h)/2, 0.5, 0.5)
		}
	}
	return dc.Image()
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func initials(name string) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(word)[0])))
	}
	return b.String()
}

// spaced letter-spaces the brand line ("WORKSHOP PASS" -> "W O R K S H O P …").
func spaced(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes)*2)
	for i, r := range runes {
		out = append(out, r)
		if i < len(runes)-1 {
			out = append(out, ' ')
		}
	}
	return string(out)
}
