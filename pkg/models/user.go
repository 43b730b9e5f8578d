package models

import (
	"time"
)

// User represents a registered account. A user is also a channel: other
// users subscribe to it and its videos hang off of it.
type User struct {
	ID            string    `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Email         string    `json:"email" db:"email"`
	FullName      string    `json:"fullname" db:"full_name"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Avatar        string    `json:"avatar" db:"avatar"`
	AvatarKey     string    `json:"-" db:"avatar_key"`
	CoverImage    string    `json:"coverImage,omitempty" db:"cover_image"`
	CoverImageKey string    `json:"-" db:"cover_image_key"`
	RefreshToken  string    `json:"-" db:"refresh_token"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// OwnerSummary is the reduced owner projection embedded in denormalized
// views (comments, videos, tweets). Only public profile fields.
type OwnerSummary struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	FullName string `json:"fullname" db:"full_name"`
	Avatar   string `json:"avatar" db:"avatar"`
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
