package database

import (
	"context"
	"fmt"
)

// schema statements are idempotent so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		avatar_key TEXT NOT NULL DEFAULT '',
		cover_image TEXT NOT NULL DEFAULT '',
		cover_image_key TEXT NOT NULL DEFAULT '',
		refresh_token TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS videos (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		video_file TEXT NOT NULL,
		video_file_key TEXT NOT NULL,
		thumbnail TEXT NOT NULL DEFAULT '',
		thumbnail_key TEXT NOT NULL DEFAULT '',
		duration DOUBLE PRECISION NOT NULL DEFAULT 0,
		views BIGINT NOT NULL DEFAULT 0,
		is_published BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_owner ON videos(owner_id)`,

	`CREATE TABLE IF NOT EXISTS tweets (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tweets_owner ON tweets(owner_id)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		video_id UUID REFERENCES videos(id) ON DELETE CASCADE,
		tweet_id UUID REFERENCES tweets(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK ((video_id IS NULL) <> (tweet_id IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_video ON comments(video_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_tweet ON comments(tweet_id)`,

	`CREATE TABLE IF NOT EXISTS likes (
		id UUID PRIMARY KEY,
		liked_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		video_id UUID REFERENCES videos(id) ON DELETE CASCADE,
		comment_id UUID REFERENCES comments(id) ON DELETE CASCADE,
		tweet_id UUID REFERENCES tweets(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (num_nonnulls(video_id, comment_id, tweet_id) = 1)
	)`,
	// Uniqueness per (actor, target) makes the like toggle atomic.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_likes_video ON likes(liked_by, video_id) WHERE video_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_likes_comment ON likes(liked_by, comment_id) WHERE comment_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_likes_tweet ON likes(liked_by, tweet_id) WHERE tweet_id IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
		id UUID PRIMARY KEY,
		subscriber_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		channel_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (subscriber_id, channel_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_channel ON subscriptions(channel_id)`,

	`CREATE TABLE IF NOT EXISTS playlists (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS playlist_videos (
		playlist_id UUID NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
		video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		position INT NOT NULL,
		added_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (playlist_id, video_id)
	)`,

	`CREATE TABLE IF NOT EXISTS watch_history (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		watched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, video_id)
	)`,
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
