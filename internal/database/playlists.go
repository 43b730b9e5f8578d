package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

// CreatePlaylist creates a new playlist record
func (r *Repository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}

	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO playlists (id, owner_id, name, description) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`,
		playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description,
	).Scan(&playlist.CreatedAt, &playlist.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	return nil
}

// GetPlaylist retrieves a playlist by ID without resolving its videos.
func (r *Repository) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	var p models.Playlist
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, owner_id, name, description, created_at, updated_at FROM playlists WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return &p, nil
}

// GetPlaylistDetail retrieves a playlist with its owner projection and
// member videos in playlist order.
func (r *Repository) GetPlaylistDetail(ctx context.Context, id string) (*models.PlaylistDetail, error) {
	var d models.PlaylistDetail
	err := r.db.Pool.QueryRow(ctx, `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		       u.id, u.username, u.full_name, u.avatar
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`, id).Scan(
		&d.ID, &d.OwnerID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt,
		&d.Owner.ID, &d.Owner.Username, &d.Owner.FullName, &d.Owner.Avatar,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT v.id, v.title, v.thumbnail, v.duration, v.views, pv.position
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist videos: %w", err)
	}
	defer rows.Close()

	d.Videos = []models.PlaylistEntry{}
	for rows.Next() {
		var e models.PlaylistEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Thumbnail, &e.Duration, &e.Views, &e.Position); err != nil {
			return nil, fmt.Errorf("failed to scan playlist video: %w", err)
		}
		d.Videos = append(d.Videos, e)
	}

	return &d, nil
}

// ListUserPlaylists retrieves all playlists owned by a user.
func (r *Repository) ListUserPlaylists(ctx context.Context, ownerID string) ([]*models.PlaylistDetail, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id FROM playlists WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan playlist id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	playlists := []*models.PlaylistDetail{}
	for _, id := range ids {
		d, err := r.GetPlaylistDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, d)
	}
	return playlists, nil
}

// UpdatePlaylist updates name and description.
func (r *Repository) UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE playlists SET name = $2, description = $3, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		playlist.ID, playlist.Name, playlist.Description,
	).Scan(&playlist.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	return nil
}

// DeletePlaylist deletes a playlist and its memberships.
func (r *Repository) DeletePlaylist(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddVideoToPlaylist appends a video at the end of the playlist. The
// primary key on (playlist_id, video_id) rejects duplicates atomically;
// ErrConflict means the video was already a member.
func (r *Repository) AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM playlist_videos
		WHERE playlist_id = $1
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`
	tag, err := r.db.Pool.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// RemoveVideoFromPlaylist removes a membership; ErrNotFound when the video
// was not in the playlist.
func (r *Repository) RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		playlistID, videoID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
