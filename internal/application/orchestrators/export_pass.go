package orchestrators

import (
	"context"
	"fmt"
	"image"

	"workshoppass/internal/domain/student"
	"workshoppass/internal/render"
)

// Export formats.
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ImageSource provides illustration images within a bounded wait; slow or
// failed assets come back nil and the renderer substitutes a placeholder.
type ImageSource interface {
	FetchAll(ctx context.Context, urls []string) []image.Image
}

// DownloadPassInput carries everything needed to produce a download artifact.
type DownloadPassInput struct {
	Record          student.Record
	Format          string // FormatPNG or FormatPDF
	IllustrationURL string
	Scale           int
	Brand           string
}

// DownloadPassDeps holds external dependencies for pass export.
type DownloadPassDeps struct {
	Images ImageSource // optional: nil always uses the placeholder
}

// DownloadPassResult is the encoded artifact ready to serve.
type DownloadPassResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExecuteDownloadPass renders the pass card and encodes it for download.
// PRE: input.Record resolved successfully
// POST: Returns the named, encoded artifact; illustration failures degrade
// to the placeholder and never fail the export
func ExecuteDownloadPass(ctx context.Context, input DownloadPassInput, deps DownloadPassDeps) (DownloadPassResult, error) {
	if input.Format != FormatPNG && input.Format != FormatPDF {
		return DownloadPassResult{}, fmt.Errorf("unsupported export format %q", input.Format)
	}

	img, err := renderPassCard(ctx, input, deps)
	if err != nil {
		return DownloadPassResult{}, err
	}

	result := DownloadPassResult{FileName: input.Record.PassFileName(input.Format)}
	switch input.Format {
	case FormatPDF:
		result.ContentType = "application/pdf"
		result.Data, err = render.PassPDF(img)
	default:
		result.ContentType = "image/png"
		result.Data, err = render.EncodePNG(img)
	}
	if err != nil {
		return DownloadPassResult{}, fmt.Errorf("failed to encode pass artifact: %w", err)
	}
	return result, nil
}

// renderPassCard fetches the illustration (bounded wait) and renders the
// card bitmap shared by the download and share paths.
func renderPassCard(ctx context.Context, input DownloadPassInput, deps DownloadPassDeps) (image.Image, error) {
	var illustration image.Image
	if deps.Images != nil && input.IllustrationURL != "" {
		illustration = deps.Images.FetchAll(ctx, []string{input.IllustrationURL})[0]
	}

	return render.Card(input.Record, render.CardOptions{
		Scale:        input.Scale,
		Illustration: illustration,
		Brand:        input.Brand,
	})
}
