package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Like toggles run as a single statement: the CTE deletes an existing
// (actor, target) row and the insert only fires when nothing was deleted.
// Combined with the unique partial indexes this removes the
// check-then-write race of toggling from two requests at once.
const toggleLikeQuery = `
	WITH removed AS (
		DELETE FROM likes WHERE liked_by = $1 AND %s = $2 RETURNING id
	)
	INSERT INTO likes (id, liked_by, %s)
	SELECT $3, $1, $2
	WHERE NOT EXISTS (SELECT 1 FROM removed)
	RETURNING id
`

func (r *Repository) toggleLike(ctx context.Context, column, userID, targetID string) (bool, error) {
	query := fmt.Sprintf(toggleLikeQuery, column, column)

	var id string
	err := r.db.Pool.QueryRow(ctx, query, userID, targetID, uuid.New().String()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// The delete branch won: the like existed and is now gone.
		return false, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		// FK violation: the target row does not exist.
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}
	return true, nil
}

// ToggleVideoLike flips the like state for (user, video) and reports the
// resulting state: true means liked.
func (r *Repository) ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error) {
	return r.toggleLike(ctx, "video_id", userID, videoID)
}

// ToggleCommentLike flips the like state for (user, comment).
func (r *Repository) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	return r.toggleLike(ctx, "comment_id", userID, commentID)
}

// ToggleTweetLike flips the like state for (user, tweet).
func (r *Repository) ToggleTweetLike(ctx context.Context, userID, tweetID string) (bool, error) {
	return r.toggleLike(ctx, "tweet_id", userID, tweetID)
}
