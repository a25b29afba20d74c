package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	domain "workshoppass/internal/domain/student"
)

// recordJSON is the wire shape of the static roster file, matching what the
// sync CLI exports.
type recordJSON struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Workshop string `json:"workshop"`
	Date     string `json:"date"`
	PassURL  string `json:"passUrl,omitempty"`
}

// JSONStore is a read-only Store backed by the static roster JSON file that
// the sync CLI exports. It is the fallback when no database is wired up.
type JSONStore struct {
	bySlug map[string]domain.Record
}

// NewJSONStore loads the roster file at path.
func NewJSONStore(path string) (*JSONStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	records, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}

	bySlug := make(map[string]domain.Record, len(records))
	for _, r := range records {
		bySlug[r.Slug] = r
	}
	return &JSONStore{bySlug: bySlug}, nil
}

// GetBySlug looks up a record in the loaded roster.
func (s *JSONStore) GetBySlug(_ context.Context, slug string) (domain.Record, error) {
	r, ok := s.bySlug[slug]
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return r, nil
}

// Save is rejected: the static roster is produced by the sync CLI and the
// front end only reads.
func (s *JSONStore) Save(_ context.Context, _ domain.Record) error {
	return fmt.Errorf("json roster store is read-only")
}

// List returns all loaded records in unspecified order.
func (s *JSONStore) List(_ context.Context) ([]domain.Record, error) {
	out := make([]domain.Record, 0, len(s.bySlug))
	for _, r := range s.bySlug {
		out = append(out, r)
	}
	return out, nil
}

// ReadJSON decodes a roster array from r.
func ReadJSON(r io.Reader) ([]domain.Record, error) {
	var raw []recordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(raw))
	for _, e := range raw {
		records = append(records, domain.Record{
			Name:     e.Name,
			Slug:     e.Slug,
			Workshop: e.Workshop,
			Date:     e.Date,
			PassURL:  e.PassURL,
		})
	}
	return records, nil
}

// WriteJSON encodes records as the static roster array, indented for diffs.
func WriteJSON(w io.Writer, records []domain.Record) error {
	raw := make([]recordJSON, 0, len(records))
	for _, r := range records {
		raw = append(raw, recordJSON{
			Name:     r.Name,
			Slug:     r.Slug,
			Workshop: r.Workshop,
			Date:     r.Date,
			PassURL:  r.PassURL,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}
