// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the pass server configuration. Every field maps to a PASS_*
// environment variable.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"PASS_ADDR" envDefault:":8080"`

	// BaseURL is the externally visible origin used to mint pass URLs.
	BaseURL string `env:"PASS_BASE_URL" envDefault:"http://localhost:8080"`

	// DB is the SQLite database path.
	DB string `env:"PASS_DB" envDefault:"pass.db"`

	// RosterJSON optionally seeds the roster from a JSON export at startup.
	RosterJSON string `env:"PASS_ROSTER_JSON"`

	// WorkshopTitle names the event on pass pages and cards.
	WorkshopTitle string `env:"PASS_WORKSHOP_TITLE" envDefault:"Live Sketching Workshop"`

	// WorkshopBlurb is Markdown shown under the pass card.
	WorkshopBlurb string `env:"PASS_WORKSHOP_BLURB"`

	// IllustrationURL is the remote artwork composited onto cards.
	IllustrationURL string `env:"PASS_ILLUSTRATION_URL"`

	// Brand overrides the card brand line.
	Brand string `env:"PASS_BRAND"`

	// Scale is the raster export multiplier.
	Scale int `env:"PASS_SCALE"`

	// ClosedRoster refuses passes for slugs missing from the roster.
	ClosedRoster bool `env:"PASS_CLOSED_ROSTER"`

	// RegistrationURL is offered on the access-denied view.
	RegistrationURL string `env:"PASS_REGISTRATION_URL"`

	// ResendAPIKey enables email sharing when set.
	ResendAPIKey string `env:"PASS_RESEND_API_KEY"`

	// ShareFrom is the sender address for email sharing.
	ShareFrom string `env:"PASS_SHARE_FROM"`

	// ShareTo is the recipient list for email sharing.
	ShareTo []string `env:"PASS_SHARE_TO"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
