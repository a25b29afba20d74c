package assets

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	// Decoders for the formats illustration assets come in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// DefaultTimeout bounds how long an export waits for remote illustrations
// before proceeding with placeholders.
const DefaultTimeout = 8 * time.Second

// Fetcher retrieves remote illustration images within a bounded wait.
// A fetch that fails or times out yields nil, never an error surfaced to the
// user: the renderer substitutes a placeholder.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewFetcher creates a Fetcher. A zero timeout uses DefaultTimeout; a nil
// client uses http.DefaultClient.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: client, timeout: timeout}
}

// Fetch retrieves and decodes one image. Unlike FetchAll it reports the
// error, for callers that want to log the cause.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset %s returned status %d", url, resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", url, err)
	}
	return img, nil
}

// FetchAll fans out over every URL under one shared deadline and fans back
// in, preserving order. Slots for failed or slow assets are nil; FetchAll
// itself never fails. An empty url is skipped without a request.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []image.Image {
	images := make([]image.Image, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		if url == "" {
			continue
		}
		g.Go(func() error {
			img, err := f.Fetch(ctx, url)
			if err != nil {
				slog.Warn("asset_fetch_failed", "url", url, "error", err)
				return nil
			}
			images[i] = img
			return nil
		})
	}
	// Workers only return nil; Wait is just the fan-in barrier.
	_ = g.Wait()
	return images
}
