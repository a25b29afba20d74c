package share

import (
	"context"
	"errors"
)

// Capability outcome errors. Callers walk a fallback chain on ErrUnavailable
// and stop silently on ErrCanceled: a dismissed share prompt is a normal
// outcome, not a failure.
var (
	ErrUnavailable = errors.New("share capability unavailable")
	ErrCanceled    = errors.New("share canceled")
)

// Payload is the composited artifact plus caption handed to a capability.
type Payload struct {
	FileName string
	Image    []byte // encoded PNG
	Caption  string
}

// Sharer delivers a pass artifact through some platform capability.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// Clipboard receives the caption text when the share capability is absent.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}
