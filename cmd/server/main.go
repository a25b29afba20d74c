package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	web "workshoppass/internal/adapters/http"
	"workshoppass/internal/adapters/share"
	"workshoppass/internal/adapters/storage"
	rosterStore "workshoppass/internal/adapters/storage/roster"
	"workshoppass/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize database with WAL mode and busy timeout
	dsn := cfg.DB + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store := rosterStore.NewSQLiteStore(db)

	// Seed the roster from a JSON export when configured (idempotent upsert)
	if cfg.RosterJSON != "" {
		f, err := os.Open(cfg.RosterJSON)
		if err != nil {
			log.Fatalf("failed to open roster JSON: %v", err)
		}
		records, err := rosterStore.ReadJSON(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to parse roster JSON: %v", err)
		}
		for _, rec := range records {
			if err := store.Save(context.Background(), rec); err != nil {
				log.Fatalf("failed to seed roster record %q: %v", rec.Slug, err)
			}
		}
		log.Printf("Roster seeded from %s (%d records)", cfg.RosterJSON, len(records))
	}

	// Configure the share channel
	var sharer share.Sharer
	if cfg.ResendAPIKey != "" && len(cfg.ShareTo) > 0 {
		sharer = share.NewEmailSharer(cfg.ResendAPIKey, cfg.ShareFrom, cfg.ShareTo)
		log.Println("Share channel configured (Resend)")
	} else {
		sharer = share.NewNoopSharer()
		log.Println("Share channel unavailable (set PASS_RESEND_API_KEY and PASS_SHARE_TO) — share requests fall back to download")
	}

	mux := web.NewMux(&web.Stores{RosterStore: store}, web.Options{
		BaseURL:         cfg.BaseURL,
		WorkshopTitle:   cfg.WorkshopTitle,
		WorkshopBlurb:   cfg.WorkshopBlurb,
		IllustrationURL: cfg.IllustrationURL,
		ClosedRoster:    cfg.ClosedRoster,
		RegistrationURL: cfg.RegistrationURL,
		Brand:           cfg.Brand,
		Scale:           cfg.Scale,
		Sharer:          sharer,
		Clipboard:       share.NewNoopClipboard(),
	})

	log.Printf("Pass server %s starting on %s (base URL %s)", version, cfg.Addr, cfg.BaseURL)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
