package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ToggleSubscription flips the subscription state for (subscriber, channel)
// in one statement, same shape as the like toggle. Returns true when the
// subscriber is now subscribed.
func (r *Repository) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	query := `
		WITH removed AS (
			DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2 RETURNING id
		)
		INSERT INTO subscriptions (id, subscriber_id, channel_id)
		SELECT $3, $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM removed)
		RETURNING id
	`

	var id string
	err := r.db.Pool.QueryRow(ctx, query, subscriberID, channelID, uuid.New().String()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle subscription: %w", err)
	}
	return true, nil
}
