package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"workshoppass/internal/adapters/storage"
	domain "workshoppass/internal/domain/student"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new roster store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetBySlug retrieves a Record by its slug.
// PRE: slug is non-empty
// POST: Returns the entity, or ErrNotFound when no row matches
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (domain.Record, error) {
	query := "SELECT id, name, slug, workshop, date, pass_url FROM pass_record WHERE slug = ?"

	row := s.db.QueryRowContext(ctx, query, slug)

	var entity domain.Record
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Slug,
		&entity.Workshop,
		&entity.Date,
		&entity.PassURL,
	)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return entity, err
}

// Save creates or updates a Record keyed by slug.
// PRE: value has been validated
// POST: A later GetBySlug returns the saved values; a slug collision
// overwrites the previous record
func (s *SQLiteStore) Save(ctx context.Context, value domain.Record) error {
	query := `INSERT INTO pass_record (id, name, slug, workshop, date, pass_url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			workshop = excluded.workshop,
			date = excluded.date,
			pass_url = excluded.pass_url,
			updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		value.ID,
		value.Name,
		value.Slug,
		value.Workshop,
		value.Date,
		value.PassURL,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save pass record: %w", err)
	}
	return nil
}

// List returns all records ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Record, error) {
	query := "SELECT id, name, slug, workshop, date, pass_url FROM pass_record ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pass records: %w", err)
	}
	defer rows.Close()

	var entities []domain.Record
	for rows.Next() {
		var entity domain.Record
		if err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Slug,
			&entity.Workshop,
			&entity.Date,
			&entity.PassURL,
		); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}
