package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Content, &c.VideoID, &c.TweetID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &c, nil
}

// CreateComment creates a comment attached to a video or a tweet; exactly
// one of the parent references must be set.
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}

	query := `
		INSERT INTO comments (id, owner_id, content, video_id, tweet_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.ID, comment.OwnerID, comment.Content, comment.VideoID, comment.TweetID,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetComment retrieves a comment by ID
func (r *Repository) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, owner_id, content, video_id, tweet_id, created_at, updated_at
		FROM comments
		WHERE id = $1
	`
	return scanComment(r.db.Pool.QueryRow(ctx, query, id))
}

// UpdateComment replaces the comment content.
func (r *Repository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE comments SET content = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		comment.ID, comment.Content,
	).Scan(&comment.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// DeleteComment deletes a comment by ID
func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
