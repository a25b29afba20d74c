package student

import (
	"errors"
	"strings"

	"workshoppass/internal/domain/slug"
)

// Max length constants for roster-sourced fields.
const (
	MaxNameLength     = 100
	MaxWorkshopLength = 200
)

// Domain errors
var (
	ErrEmptyName   = errors.New("student name cannot be empty")
	ErrInvalidSlug = errors.New("student slug is not a valid identifier")
)

// Record holds the roster state for one attendee. Records are built by the
// roster sync or synthesized by the pass resolver and are immutable once a
// pass has been rendered from them.
type Record struct {
	ID       string
	Name     string
	Slug     string
	Workshop string
	Date     string
	PassURL  string
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Slug is derived from Name and matches the slug pattern
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if len(r.Name) > MaxNameLength {
		return errors.New("student name cannot exceed 100 characters")
	}
	if len(r.Workshop) > MaxWorkshopLength {
		return errors.New("workshop title cannot exceed 200 characters")
	}
	if !slug.Valid(r.Slug) {
		return ErrInvalidSlug
	}
	return nil
}

// PassFileName returns the download artifact name for this record:
// {slug}-{event-slug}-pass.{ext}. Stable per student, so repeated downloads
// within a session overwrite rather than accumulate.
// PRE: ext is a bare extension such as "png" or "pdf"
// POST: Returns a non-empty file name even when Slug or Workshop are empty
func (r *Record) PassFileName(ext string) string {
	parts := make([]string, 0, 3)
	if r.Slug != "" {
		parts = append(parts, r.Slug)
	} else if derived := slug.Derive(r.Name); derived != "" {
		parts = append(parts, derived)
	}
	if event := slug.Derive(r.Workshop); event != "" {
		parts = append(parts, event)
	}
	parts = append(parts, "pass")
	return strings.Join(parts, "-") + "." + ext
}
