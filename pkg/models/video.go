package models

import (
	"time"
)

// Video represents a published (or draft) video owned by a user.
type Video struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	VideoFile    string    `json:"videoFile" db:"video_file"`
	VideoFileKey string    `json:"-" db:"video_file_key"`
	Thumbnail    string    `json:"thumbnail" db:"thumbnail"`
	ThumbnailKey string    `json:"-" db:"thumbnail_key"`
	Duration     float64   `json:"duration" db:"duration"`
	Views        int64     `json:"views" db:"views"`
	IsPublished  bool      `json:"isPublished" db:"is_published"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MediaRef points at an object stored with the media storage provider.
// Key is what Remove needs; URL is what clients render.
type MediaRef struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
