package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"workshoppass/internal/adapters/share"
	"workshoppass/internal/domain/student"
	"workshoppass/internal/render"
)

// User-facing notices surfaced by the share flow. Cancellation deliberately
// has none.
const (
	NoticeShared        = "Pass shared."
	NoticeCaptionCopied = "Caption copied to clipboard."
	NoticeDownloaded    = "Pass image downloaded."
	NoticeShareFailed   = "Sharing failed. Your pass image is available to download instead."
)

// CaptionSource picks share captions.
type CaptionSource interface {
	Pick() string
}

// SharePassInput carries the resolved record and styling choices.
type SharePassInput struct {
	Record          student.Record
	Placement       render.Placement
	IllustrationURL string
	Scale           int
	Brand           string
}

// SharePassDeps holds the capability chain for sharing.
type SharePassDeps struct {
	Images    ImageSource
	Captions  CaptionSource // optional: nil shares without a caption
	Sharer    share.Sharer
	Clipboard share.Clipboard
}

// SharePassResult reports what the flow did so the front end can surface
// the right transient notices.
type SharePassResult struct {
	Caption       string
	Shared        bool
	Canceled      bool
	CaptionCopied bool
	Download      *DownloadPassResult // set when the flow fell back to download
	Notices       []string
}

// ExecuteSharePass renders the pass with its caption and attempts the share
// channel. When the channel is absent it falls back to copying the caption
// and returning the download artifact, surfacing NoticeShareFailed only when
// both reject.
// PRE: input.Record resolved successfully
// POST: Cancellation of the share is a silent success (no notices, no
// fallback); only render/encode failures return an error, and retrying is
// always safe
func ExecuteSharePass(ctx context.Context, input SharePassInput, deps SharePassDeps) (SharePassResult, error) {
	var result SharePassResult
	if deps.Captions != nil {
		result.Caption = deps.Captions.Pick()
	}

	img, err := renderPassCard(ctx, DownloadPassInput{
		Record:          input.Record,
		Format:          FormatPNG,
		IllustrationURL: input.IllustrationURL,
		Scale:           input.Scale,
		Brand:           input.Brand,
	}, DownloadPassDeps{Images: deps.Images})
	if err != nil {
		return SharePassResult{}, err
	}

	composited, err := render.CompositeCaption(img, result.Caption, input.Placement)
	if err != nil {
		return SharePassResult{}, err
	}
	data, err := render.EncodePNG(composited)
	if err != nil {
		return SharePassResult{}, err
	}

	fileName := input.Record.PassFileName(FormatPNG)
	var shareErr error = share.ErrUnavailable
	if deps.Sharer != nil {
		shareErr = deps.Sharer.Share(ctx, share.Payload{
			FileName: fileName,
			Image:    data,
			Caption:  result.Caption,
		})
	}

	switch {
	case shareErr == nil:
		result.Shared = true
		result.Notices = append(result.Notices, NoticeShared)
		return result, nil
	case errors.Is(shareErr, share.ErrCanceled):
		result.Canceled = true
		return result, nil
	case !errors.Is(shareErr, share.ErrUnavailable):
		slog.Warn("share_failed", "slug", input.Record.Slug, "error", shareErr)
	}

	// Fallback: caption to clipboard, artifact as a download.
	var clipErr error = share.ErrUnavailable
	if deps.Clipboard != nil && result.Caption != "" {
		clipErr = deps.Clipboard.Copy(ctx, result.Caption)
	}
	if clipErr == nil {
		result.CaptionCopied = true
		result.Notices = append(result.Notices, NoticeCaptionCopied)
	}

	result.Download = &DownloadPassResult{
		FileName:    fileName,
		ContentType: "image/png",
		Data:        data,
	}
	result.Notices = append(result.Notices, NoticeDownloaded)

	if clipErr != nil && !errors.Is(shareErr, share.ErrUnavailable) {
		result.Notices = append(result.Notices, NoticeShareFailed)
	}
	return result, nil
}
