package models

import (
	"time"
)

// Playlist is an owned, ordered collection of videos. Membership is unique
// per (playlist, video).
type Playlist struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PlaylistDetail is a playlist with its owner projection and resolved
// member videos in playlist order.
type PlaylistDetail struct {
	Playlist
	Owner  OwnerSummary    `json:"owner"`
	Videos []PlaylistEntry `json:"videos"`
}

// PlaylistEntry is the reduced video projection shown inside a playlist.
type PlaylistEntry struct {
	ID        string  `json:"id" db:"id"`
	Title     string  `json:"title" db:"title"`
	Thumbnail string  `json:"thumbnail" db:"thumbnail"`
	Duration  float64 `json:"duration" db:"duration"`
	Views     int64   `json:"views" db:"views"`
	Position  int     `json:"position" db:"position"`
}
