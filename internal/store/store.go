package store

import (
	"context"
	"errors"

	"github.com/asd-screening/backend/internal/domain/assessment"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store persists assessment records keyed by child identity.
type Store interface {
	// Upsert inserts rec, or replaces the record with the same identity in
	// place. rec.ID, CreatedAt and UpdatedAt are set from the stored row.
	Upsert(ctx context.Context, rec *assessment.Record) error
	Get(ctx context.Context, id int64) (*assessment.Record, error)
	GetByIdentity(ctx context.Context, id assessment.Identity) (*assessment.Record, error)
	// List returns every record, most recently updated first.
	List(ctx context.Context) ([]*assessment.Record, error)
	// DeleteByIdentity removes all records for an identity and reports how
	// many were removed. It returns ErrNotFound when there were none.
	DeleteByIdentity(ctx context.Context, id assessment.Identity) (int64, error)
}
