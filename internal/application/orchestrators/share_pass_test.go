package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"workshoppass/internal/adapters/share"
	"workshoppass/internal/domain/student"
	"workshoppass/internal/render"
)

type scriptedSharer struct {
	err     error
	called  int
	payload share.Payload
}

func (s *scriptedSharer) Share(_ context.Context, p share.Payload) error {
	s.called++
	s.payload = p
	return s.err
}

type scriptedClipboard struct {
	err    error
	called int
	text   string
}

func (c *scriptedClipboard) Copy(_ context.Context, text string) error {
	c.called++
	c.text = text
	return c.err
}

type fixedCaption struct{ text string }

func (f fixedCaption) Pick() string { return f.text }

var shareRec = student.Record{
	Name:    "Rahul Sharma",
	Slug:    "rahul-sharma",
	PassURL: "https://x.com/pass/rahul-sharma",
}

func shareInput() SharePassInput {
	return SharePassInput{Record: shareRec, Placement: render.PlacementFooter, Scale: 1}
}

// TestSharePassNativeSuccess verifies the happy path: shared, no fallback.
func TestSharePassNativeSuccess(t *testing.T) {
	sharer := &scriptedSharer{}
	clip := &scriptedClipboard{}

	res, err := ExecuteSharePass(context.Background(), shareInput(), SharePassDeps{
		Captions: fixedCaption{"See you there!"}, Sharer: sharer, Clipboard: clip,
	})
	if err != nil {
		t.Fatalf("ExecuteSharePass() error = %v", err)
	}

	if !res.Shared || res.Download != nil || res.CaptionCopied {
		t.Errorf("unexpected result %+v", res)
	}
	if sharer.payload.Caption != "See you there!" {
		t.Errorf("payload caption = %q", sharer.payload.Caption)
	}
	if sharer.payload.FileName != "rahul-sharma-pass.png" {
		t.Errorf("payload file = %q", sharer.payload.FileName)
	}
	if len(sharer.payload.Image) == 0 {
		t.Error("payload has no image bytes")
	}
	if clip.called != 0 {
		t.Error("clipboard used despite successful share")
	}
}

// TestSharePassUnavailableFallsBack verifies the fallback chain: clipboard
// copy of the caption plus a download artifact, no error.
func TestSharePassUnavailableFallsBack(t *testing.T) {
	sharer := &scriptedSharer{err: share.ErrUnavailable}
	clip := &scriptedClipboard{}

	res, err := ExecuteSharePass(context.Background(), shareInput(), SharePassDeps{
		Captions: fixedCaption{"Pass secured."}, Sharer: sharer, Clipboard: clip,
	})
	if err != nil {
		t.Fatalf("fallback must not error, got %v", err)
	}

	if res.Shared {
		t.Error("Shared = true, want false")
	}
	if !res.CaptionCopied || clip.text != "Pass secured." {
		t.Errorf("caption not copied: %+v", res)
	}
	if res.Download == nil || len(res.Download.Data) == 0 {
		t.Fatal("fallback download artifact missing")
	}
	// The downloaded artifact is the composited image, taller than the
	// bare card because of the footer strip.
	img, err := png.Decode(bytes.NewReader(res.Download.Data))
	if err != nil {
		t.Fatalf("artifact does not decode: %v", err)
	}
	if img.Bounds().Dy() <= render.BaseHeight {
		t.Errorf("artifact height %d, want > %d (caption strip)", img.Bounds().Dy(), render.BaseHeight)
	}
	for _, n := range []string{NoticeCaptionCopied, NoticeDownloaded} {
		if !containsNotice(res.Notices, n) {
			t.Errorf("notices %v missing %q", res.Notices, n)
		}
	}
}

// TestSharePassCancellationIsSilent verifies a dismissed share prompt
// yields no notices and no fallback.
func TestSharePassCancellationIsSilent(t *testing.T) {
	sharer := &scriptedSharer{err: share.ErrCanceled}
	clip := &scriptedClipboard{}

	res, err := ExecuteSharePass(context.Background(), shareInput(), SharePassDeps{
		Captions: fixedCaption{"x"}, Sharer: sharer, Clipboard: clip,
	})
	if err != nil {
		t.Fatalf("cancellation must not error, got %v", err)
	}
	if !res.Canceled {
		t.Error("Canceled = false, want true")
	}
	if len(res.Notices) != 0 {
		t.Errorf("cancellation produced notices %v, want none", res.Notices)
	}
	if res.Download != nil || clip.called != 0 {
		t.Error("cancellation triggered fallback")
	}
}

// TestSharePassBothRejectSurfacesFailure verifies the visible failure
// notice when share and clipboard both reject, with the download still
// offered.
func TestSharePassBothRejectSurfacesFailure(t *testing.T) {
	sharer := &scriptedSharer{err: errors.New("bridge exploded")}
	clip := &scriptedClipboard{err: errors.New("clipboard denied")}

	res, err := ExecuteSharePass(context.Background(), shareInput(), SharePassDeps{
		Captions: fixedCaption{"x"}, Sharer: sharer, Clipboard: clip,
	})
	if err != nil {
		t.Fatalf("fallback must not error, got %v", err)
	}
	if !containsNotice(res.Notices, NoticeShareFailed) {
		t.Errorf("notices %v missing failure notice", res.Notices)
	}
	if res.Download == nil {
		t.Error("download should still be offered after double rejection")
	}
	if res.CaptionCopied {
		t.Error("CaptionCopied = true despite clipboard rejection")
	}
}

// TestSharePassWithoutCaptionSource verifies sharing works with no caption
// wired (no clipboard use, bare image shared).
func TestSharePassWithoutCaptionSource(t *testing.T) {
	sharer := &scriptedSharer{err: share.ErrUnavailable}
	clip := &scriptedClipboard{}

	res, err := ExecuteSharePass(context.Background(), shareInput(), SharePassDeps{
		Sharer: sharer, Clipboard: clip,
	})
	if err != nil {
		t.Fatal(err)
	}
	if clip.called != 0 {
		t.Error("clipboard used with empty caption")
	}
	if res.Download == nil {
		t.Error("download fallback missing")
	}
}

func containsNotice(notices []string, want string) bool {
	for _, n := range notices {
		if n == want {
			return true
		}
	}
	return false
}
