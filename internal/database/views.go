package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

// This file holds the read-only denormalized views: each query filters by a
// primary key or owner, joins the referenced entities down to the fields
// the response needs, computes derived counts and paginates where the
// route supports it.

// GetChannelProfile returns the public channel view for a username with
// subscription counts. viewerID may be empty for anonymous requests; it
// only drives the isSubscribed flag.
func (r *Repository) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.avatar, u.cover_image,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscriber_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
		       EXISTS (
		           SELECT 1 FROM subscriptions s
		           WHERE s.channel_id = u.id AND s.subscriber_id = NULLIF($2, '')::uuid
		       ) AS is_subscribed
		FROM users u
		WHERE u.username = $1
	`

	var p models.ChannelProfile
	err := r.db.Pool.QueryRow(ctx, query, username, viewerID).Scan(
		&p.ID, &p.Username, &p.Email, &p.FullName, &p.Avatar, &p.CoverImage,
		&p.SubscriberCount, &p.SubscribedToCount, &p.IsSubscribed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}
	return &p, nil
}

// GetChannelStats combines profile fields with video, view, subscriber and
// like totals for the dashboard. The average is derived in AverageLikes so
// the math has a unit test.
func (r *Repository) GetChannelStats(ctx context.Context, ownerID string) (*models.ChannelStats, error) {
	var s models.ChannelStats
	err := r.db.Pool.QueryRow(ctx,
		`SELECT username, full_name, avatar, cover_image FROM users WHERE id = $1`,
		ownerID,
	).Scan(&s.Username, &s.FullName, &s.Avatar, &s.CoverImage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1),
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)
	`, ownerID).Scan(&s.TotalVideos, &s.TotalViews, &s.TotalLikes)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate channel stats: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`,
		ownerID,
	).Scan(&s.TotalSubscribers)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscribers: %w", err)
	}

	s.AvgLikesPerVideo = AverageLikes(s.TotalLikes, s.TotalVideos)
	return &s, nil
}

// AverageLikes computes likes-per-video, zero when the channel has no
// videos.
func AverageLikes(totalLikes, totalVideos int64) float64 {
	if totalVideos == 0 {
		return 0
	}
	return float64(totalLikes) / float64(totalVideos)
}

const videoWithOwnerColumns = `
	v.id, v.owner_id, v.title, v.description, v.video_file, v.video_file_key,
	v.thumbnail, v.thumbnail_key, v.duration, v.views, v.is_published,
	v.created_at, v.updated_at,
	u.id, u.username, u.full_name, u.avatar`

func scanVideoWithOwner(rows pgx.Rows) (models.VideoWithOwner, error) {
	var v models.VideoWithOwner
	err := rows.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoFile, &v.VideoFileKey,
		&v.Thumbnail, &v.ThumbnailKey, &v.Duration, &v.Views, &v.IsPublished,
		&v.CreatedAt, &v.UpdatedAt,
		&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.Avatar,
	)
	return v, err
}

// GetWatchHistory resolves the viewer's watch history into full videos
// with reduced owner projections, most recently watched first.
func (r *Repository) GetWatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM watch_history wh
		JOIN videos v ON v.id = wh.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE wh.user_id = $1
		ORDER BY wh.watched_at DESC
	`, videoWithOwnerColumns)

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	defer rows.Close()

	videos := []models.VideoWithOwner{}
	for rows.Next() {
		v, err := scanVideoWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch history video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// GetLikedVideos flattens the viewer's video likes into the liked videos
// with owner projections.
func (r *Repository) GetLikedVideos(ctx context.Context, userID string) ([]models.LikedVideo, error) {
	query := `
		SELECT l.id, l.created_at, v.id, v.title, v.thumbnail, v.views,
		       u.id, u.username, u.full_name, u.avatar
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked videos: %w", err)
	}
	defer rows.Close()

	liked := []models.LikedVideo{}
	for rows.Next() {
		var lv models.LikedVideo
		err := rows.Scan(
			&lv.LikeID, &lv.LikedAt, &lv.ID, &lv.Title, &lv.Thumbnail, &lv.Views,
			&lv.Owner.ID, &lv.Owner.Username, &lv.Owner.FullName, &lv.Owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liked video: %w", err)
		}
		liked = append(liked, lv)
	}
	return liked, nil
}

// GetLikedTweets flattens the viewer's tweet likes into the liked tweets
// with owner projections.
func (r *Repository) GetLikedTweets(ctx context.Context, userID string) ([]models.LikedTweet, error) {
	query := `
		SELECT l.id, l.created_at, t.id, t.content,
		       u.id, u.username, u.full_name, u.avatar
		FROM likes l
		JOIN tweets t ON t.id = l.tweet_id
		JOIN users u ON u.id = t.owner_id
		WHERE l.liked_by = $1 AND l.tweet_id IS NOT NULL
		ORDER BY l.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked tweets: %w", err)
	}
	defer rows.Close()

	liked := []models.LikedTweet{}
	for rows.Next() {
		var lt models.LikedTweet
		err := rows.Scan(
			&lt.LikeID, &lt.LikedAt, &lt.ID, &lt.Content,
			&lt.Owner.ID, &lt.Owner.Username, &lt.Owner.FullName, &lt.Owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liked tweet: %w", err)
		}
		liked = append(liked, lt)
	}
	return liked, nil
}

func (r *Repository) listComments(ctx context.Context, column, parentID string, page, limit int) (*models.CommentPage, error) {
	page, limit, offset := NormalizePage(page, limit)

	query := fmt.Sprintf(`
		SELECT c.id, c.owner_id, c.content, c.video_id, c.tweet_id,
		       c.created_at, c.updated_at,
		       u.id, u.username, u.full_name, u.avatar,
		       COUNT(*) OVER() AS total
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.%s = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`, column)

	rows, err := r.db.Pool.Query(ctx, query, parentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	result := &models.CommentPage{Comments: []models.CommentWithOwner{}, Page: page, Limit: limit}
	for rows.Next() {
		var c models.CommentWithOwner
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Content, &c.VideoID, &c.TweetID,
			&c.CreatedAt, &c.UpdatedAt,
			&c.Owner.ID, &c.Owner.Username, &c.Owner.FullName, &c.Owner.Avatar,
			&result.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result.Comments = append(result.Comments, c)
	}
	return result, nil
}

// ListVideoComments lists comments on a video with owner projections,
// newest first, page/limit paginated.
func (r *Repository) ListVideoComments(ctx context.Context, videoID string, page, limit int) (*models.CommentPage, error) {
	return r.listComments(ctx, "video_id", videoID, page, limit)
}

// ListTweetComments lists comments on a tweet with owner projections.
func (r *Repository) ListTweetComments(ctx context.Context, tweetID string, page, limit int) (*models.CommentPage, error) {
	return r.listComments(ctx, "tweet_id", tweetID, page, limit)
}

// tweetSortColumns whitelists caller-supplied sort keys. Anything else
// falls back to creation time.
var tweetSortColumns = map[string]string{
	"createdAt": "t.created_at",
	"updatedAt": "t.updated_at",
	"content":   "t.content",
}

func tweetSortClause(sortBy, sortType string) string {
	column, ok := tweetSortColumns[sortBy]
	if !ok {
		column = "t.created_at"
	}
	direction := "DESC"
	if sortType == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// ListUserTweets lists a user's tweets with owner projections, sortable by
// whitelisted columns and page/limit paginated (defaults page 1 limit 10,
// createdAt descending).
func (r *Repository) ListUserTweets(ctx context.Context, userID string, page, limit int, sortBy, sortType string) ([]models.TweetWithOwner, error) {
	_, limit, offset := NormalizePage(page, limit)

	query := fmt.Sprintf(`
		SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		       u.id, u.username, u.full_name, u.avatar
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, tweetSortClause(sortBy, sortType))

	rows, err := r.db.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	tweets := []models.TweetWithOwner{}
	for rows.Next() {
		var t models.TweetWithOwner
		err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
			&t.Owner.ID, &t.Owner.Username, &t.Owner.FullName, &t.Owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tweet: %w", err)
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

// ListChannelSubscribers lists who subscribes to a channel.
func (r *Repository) ListChannelSubscribers(ctx context.Context, channelID string) ([]models.Subscriber, error) {
	query := `
		SELECT s.created_at, u.id, u.username, u.email, u.full_name, u.avatar
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := []models.Subscriber{}
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.SubscribedAt, &s.ID, &s.Username, &s.Email, &s.FullName, &s.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, nil
}

// ListSubscribedChannels lists the channels a user subscribes to.
func (r *Repository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]models.SubscribedChannel, error) {
	query := `
		SELECT s.created_at, u.id, u.username, u.email, u.full_name, u.avatar
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed channels: %w", err)
	}
	defer rows.Close()

	channels := []models.SubscribedChannel{}
	for rows.Next() {
		var c models.SubscribedChannel
		if err := rows.Scan(&c.SubscribedAt, &c.ID, &c.Username, &c.Email, &c.FullName, &c.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan subscribed channel: %w", err)
		}
		channels = append(channels, c)
	}
	return channels, nil
}

// ListChannelVideos lists every video a channel owns, drafts included, for
// the owner dashboard.
func (r *Repository) ListChannelVideos(ctx context.Context, ownerID string) ([]*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE owner_id = $1 ORDER BY created_at DESC`, videoColumns)

	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel videos: %w", err)
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		var v models.Video
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoFile, &v.VideoFileKey,
			&v.Thumbnail, &v.ThumbnailKey, &v.Duration, &v.Views, &v.IsPublished,
			&v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, &v)
	}
	return videos, nil
}

// VideoListOptions filters the public video listing.
type VideoListOptions struct {
	Page    int
	Limit   int
	Query   string // optional title/description search
	OwnerID string // optional channel filter
}

// ListVideos lists published videos with owner projections, newest first,
// optionally filtered by search text and owner.
func (r *Repository) ListVideos(ctx context.Context, opts VideoListOptions) (*models.VideoPage, error) {
	page, limit, offset := NormalizePage(opts.Page, opts.Limit)

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.is_published
		  AND ($1 = '' OR v.title ILIKE '%%' || $1 || '%%' OR v.description ILIKE '%%' || $1 || '%%')
		  AND ($2 = '' OR v.owner_id = NULLIF($2, '')::uuid)
		ORDER BY v.created_at DESC
		LIMIT $3 OFFSET $4
	`, videoWithOwnerColumns)

	rows, err := r.db.Pool.Query(ctx, query, opts.Query, opts.OwnerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	result := &models.VideoPage{Videos: []models.VideoWithOwner{}, Page: page, Limit: limit}
	for rows.Next() {
		var v models.VideoWithOwner
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoFile, &v.VideoFileKey,
			&v.Thumbnail, &v.ThumbnailKey, &v.Duration, &v.Views, &v.IsPublished,
			&v.CreatedAt, &v.UpdatedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.Avatar,
			&result.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		result.Videos = append(result.Videos, v)
	}
	return result, nil
}
