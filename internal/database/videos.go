package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

const videoColumns = `id, owner_id, title, description, video_file, video_file_key,
	       thumbnail, thumbnail_key, duration, views, is_published, created_at, updated_at`

func scanVideo(row pgx.Row) (*models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoFile, &v.VideoFileKey,
		&v.Thumbnail, &v.ThumbnailKey, &v.Duration, &v.Views, &v.IsPublished,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}
	return &v, nil
}

// CreateVideo creates a new video record
func (r *Repository) CreateVideo(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}

	query := `
		INSERT INTO videos (id, owner_id, title, description, video_file, video_file_key,
		                    thumbnail, thumbnail_key, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING views, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		video.ID, video.OwnerID, video.Title, video.Description,
		video.VideoFile, video.VideoFileKey, video.Thumbnail, video.ThumbnailKey,
		video.Duration, video.IsPublished,
	).Scan(&video.Views, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetVideo retrieves a video by ID
func (r *Repository) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1`, videoColumns)
	return scanVideo(r.db.Pool.QueryRow(ctx, query, id))
}

// UpdateVideo updates title, description, thumbnail and publish flag.
func (r *Repository) UpdateVideo(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail = $4, thumbnail_key = $5,
		    is_published = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		video.ID, video.Title, video.Description,
		video.Thumbnail, video.ThumbnailKey, video.IsPublished,
	).Scan(&video.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	return nil
}

// DeleteVideo deletes a video and, via cascade, its comments, likes,
// playlist memberships and watch history entries.
func (r *Repository) DeleteVideo(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (r *Repository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
