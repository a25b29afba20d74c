package share

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailSharer delivers the pass by emailing the composited image and caption
// via the Resend API. It backs the "share" action in deployments where no
// native share bridge exists but students registered with an email address.
type EmailSharer struct {
	client *resend.Client
	from   string
	to     []string
}

// NewEmailSharer creates an EmailSharer sending from the given address.
// PRE: apiKey is a valid Resend API key; from is a valid sender address
// POST: Returns a ready-to-use sharer delivering to the given recipients
func NewEmailSharer(apiKey, from string, to []string) *EmailSharer {
	return &EmailSharer{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// Share emails the pass artifact with the caption as the message body.
// POST: ErrUnavailable when no recipients are configured, so callers fall
// through to the download path
func (s *EmailSharer) Share(ctx context.Context, p Payload) error {
	if len(s.to) == 0 {
		return ErrUnavailable
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      s.to,
		Subject: "Your workshop pass",
		Html:    fmt.Sprintf("<p>%s</p>", p.Caption),
		Attachments: []*resend.Attachment{
			{
				Filename:    p.FileName,
				Content:     p.Image,
				ContentType: "image/png",
			},
		},
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("share_email_failed", "error", err, "to", s.to)
		return fmt.Errorf("share via email failed: %w", err)
	}
	slog.Info("share_email_sent", "message_id", sent.Id, "to", s.to, "file", p.FileName)
	return nil
}
