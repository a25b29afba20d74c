package roster

import (
	"context"
	"errors"

	domain "workshoppass/internal/domain/student"
)

// ErrNotFound is returned when no record exists for a slug. The resolver
// distinguishes it from storage failures: not-found feeds the resolution
// policy, anything else is an error state.
var ErrNotFound = errors.New("pass record not found")

// Store persists student pass records.
type Store interface {
	GetBySlug(ctx context.Context, slug string) (domain.Record, error)
	Save(ctx context.Context, value domain.Record) error
	List(ctx context.Context) ([]domain.Record, error)
}
