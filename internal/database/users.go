package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vidtube/backend/pkg/models"
)

const userColumns = `id, username, email, full_name, password_hash, avatar, avatar_key,
	       cover_image, cover_image_key, COALESCE(refresh_token, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.Avatar, &u.AvatarKey, &u.CoverImage, &u.CoverImageKey,
		&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateUser creates a new user record. Returns ErrConflict when the
// username or email is already taken.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, username, email, full_name, password_hash, avatar, avatar_key, cover_image, cover_image_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		user.Avatar, user.AvatarKey, user.CoverImage, user.CoverImageKey,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, id))
}

// GetUserByUsername retrieves a user by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, username))
}

// GetUserByUsernameOrEmail retrieves a user matching either identifier.
// Login accepts both.
func (r *Repository) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 OR email = $2 LIMIT 1`, userColumns)
	return scanUser(r.db.Pool.QueryRow(ctx, query, username, email))
}

// UpdateUser updates profile fields (username, email, full name, media
// references). Returns ErrConflict on a username/email collision.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, full_name = $4, avatar = $5, avatar_key = $6,
		    cover_image = $7, cover_image_key = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FullName,
		user.Avatar, user.AvatarKey, user.CoverImage, user.CoverImageKey,
	).Scan(&user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRefreshToken persists the single active refresh token for a user.
func (r *Repository) SetRefreshToken(ctx context.Context, userID, token string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`,
		userID, token,
	)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearRefreshToken ends the session lineage for a user.
func (r *Repository) ClearRefreshToken(ctx context.Context, userID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET refresh_token = NULL, updated_at = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// RecordWatch appends a video to the user's watch history; re-watching
// moves the entry to the front.
func (r *Repository) RecordWatch(ctx context.Context, userID, videoID string) error {
	query := `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
	`
	if _, err := r.db.Pool.Exec(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("failed to record watch: %w", err)
	}
	return nil
}
