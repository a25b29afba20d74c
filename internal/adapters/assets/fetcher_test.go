package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestFetchDecodesImage tests the happy path against a local server.
func TestFetchDecodesImage(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), time.Second)
	img, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("decoded width = %d, want 4", img.Bounds().Dx())
	}
}

// TestFetchErrors tests non-200 and undecodable responses.
func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			w.Write([]byte("not an image"))
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("Fetch() of 404 should fail")
	}
	if _, err := f.Fetch(context.Background(), srv.URL+"/garbage"); err == nil {
		t.Error("Fetch() of non-image should fail")
	}
}

// TestFetchAllProceedsPastSlowAssets verifies the bounded wait: a stalled
// asset comes back nil while fast ones are returned, and the call finishes
// near the timeout rather than hanging.
func TestFetchAllProceedsPastSlowAssets(t *testing.T) {
	data := pngBytes(t)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			<-release
			return
		}
		w.Write(data)
	}))
	defer srv.Close()
	defer close(release)

	f := NewFetcher(srv.Client(), 150*time.Millisecond)
	start := time.Now()
	images := f.FetchAll(context.Background(), []string{srv.URL + "/fast", srv.URL + "/slow", ""})
	elapsed := time.Since(start)

	if len(images) != 3 {
		t.Fatalf("FetchAll() returned %d slots, want 3", len(images))
	}
	if images[0] == nil {
		t.Error("fast asset should have loaded")
	}
	if images[1] != nil {
		t.Error("slow asset should have timed out to nil")
	}
	if images[2] != nil {
		t.Error("empty URL should stay nil")
	}
	if elapsed > 2*time.Second {
		t.Errorf("FetchAll() took %v, bounded wait not honored", elapsed)
	}
}
