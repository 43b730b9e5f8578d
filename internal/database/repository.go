package database

import (
	"context"
)

const (
	// DefaultPage and DefaultLimit are the fixed pagination defaults for
	// listing views.
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit caps a caller-supplied page size.
	MaxLimit = 100
)

// Repository provides database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Health reports whether the underlying pool can reach the database.
func (r *Repository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

// NormalizePage clamps page/limit to sane values and returns the offset for
// skip-based pagination (skip = (page-1)*limit).
func NormalizePage(page, limit int) (p, l, offset int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, (page - 1) * limit
}
