package share

import (
	"context"
	"log/slog"
)

// NoopSharer reports the native capability as absent, driving callers down
// the clipboard-and-download fallback. It is the default in deployments with
// no share bridge configured.
type NoopSharer struct{}

// NewNoopSharer creates a new NoopSharer.
func NewNoopSharer() *NoopSharer {
	return &NoopSharer{}
}

// Share always reports the capability as unavailable.
func (s *NoopSharer) Share(_ context.Context, p Payload) error {
	slog.Info("noop_share", "file", p.FileName, "caption_len", len(p.Caption))
	return ErrUnavailable
}

// NoopClipboard is a clipboard for development and testing: it logs the copy
// and succeeds.
type NoopClipboard struct{}

// NewNoopClipboard creates a new NoopClipboard.
func NewNoopClipboard() *NoopClipboard {
	return &NoopClipboard{}
}

// Copy logs the caption and succeeds.
func (c *NoopClipboard) Copy(_ context.Context, text string) error {
	slog.Info("noop_clipboard_copy", "text", text)
	return nil
}
