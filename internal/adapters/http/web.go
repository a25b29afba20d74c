package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"workshoppass/internal/adapters/assets"
	"workshoppass/internal/adapters/http/middleware"
	"workshoppass/internal/adapters/share"
	rosterStore "workshoppass/internal/adapters/storage/roster"
	"workshoppass/internal/application/orchestrators"
	"workshoppass/internal/application/projections"
	"workshoppass/internal/domain/caption"
)

// Stores holds all storage dependencies.
type Stores struct {
	RosterStore rosterStore.Store
}

// Options configures the pass front end.
type Options struct {
	// BaseURL is the externally visible origin, used to mint pass URLs
	// for reconstructed records and QR codes.
	BaseURL string

	// WorkshopTitle names the event on pass pages and in artifact names.
	WorkshopTitle string

	// WorkshopBlurb is Markdown shown under the pass card.
	WorkshopBlurb string

	// IllustrationURL is the remote artwork composited onto each card.
	// Empty renders the initials placeholder.
	IllustrationURL string

	// ClosedRoster refuses to reconstruct passes for unknown slugs.
	ClosedRoster bool

	// RegistrationURL is the link offered on the access-denied view.
	RegistrationURL string

	// Brand overrides the card brand line when non-empty.
	Brand string

	// Scale is the raster export multiplier (0 uses the render default).
	Scale int

	Sharer    share.Sharer
	Clipboard share.Clipboard
	Captions  *caption.Picker
	Images    orchestrators.ImageSource
}

// loadCSRFKey reads the CSRF secret from PASS_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("PASS_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PASS_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("PASS_ENV") == "production" {
		log.Fatal("PASS_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set PASS_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global options instance (set by NewMux)
var opts Options

// resolveCache keeps pass lookups stable for the life of the process:
// once a slug resolves, later requests see the same record even if the
// roster changes underneath.
var resolveCache *projections.SessionCache

// exportLocks serializes exports per slug so a double-submit renders once.
var exportLocks sync.Map

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the pass front end.
func NewMux(s *Stores, o Options) http.Handler {
	stores = s
	opts = o
	resolveCache = projections.NewSessionCache()
	if opts.Images == nil {
		opts.Images = assets.NewFetcher(nil, 0)
	}
	if opts.Captions == nil {
		opts.Captions = caption.NewPicker(nil, nil)
	}

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}

// slugLock returns the per-slug mutex used to serialize export work.
func slugLock(slug string) *sync.Mutex {
	v, _ := exportLocks.LoadOrStore(slug, &sync.Mutex{})
	return v.(*sync.Mutex)
}
