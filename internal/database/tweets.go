package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

// CreateTweet creates a new tweet record
func (r *Repository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	if tweet.ID == "" {
		tweet.ID = uuid.New().String()
	}

	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO tweets (id, owner_id, content) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		tweet.ID, tweet.OwnerID, tweet.Content,
	).Scan(&tweet.CreatedAt, &tweet.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	return nil
}

// GetTweet retrieves a tweet by ID
func (r *Repository) GetTweet(ctx context.Context, id string) (*models.Tweet, error) {
	var t models.Tweet
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, owner_id, content, created_at, updated_at FROM tweets WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return &t, nil
}

// UpdateTweet replaces the tweet content.
func (r *Repository) UpdateTweet(ctx context.Context, tweet *models.Tweet) error {
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE tweets SET content = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		tweet.ID, tweet.Content,
	).Scan(&tweet.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update tweet: %w", err)
	}
	return nil
}

// DeleteTweet deletes a tweet by ID
func (r *Repository) DeleteTweet(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
