package models

import (
	"time"
)

// Comment attaches to exactly one of a video or a tweet.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	VideoID   *string   `json:"video_id,omitempty" db:"video_id"`
	TweetID   *string   `json:"tweet_id,omitempty" db:"tweet_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Tweet is a short text post on a user's channel.
type Tweet struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Like is a join record: its existence means "liked". Exactly one of the
// target references is set.
type Like struct {
	ID        string    `json:"id" db:"id"`
	LikedBy   string    `json:"liked_by" db:"liked_by"`
	VideoID   *string   `json:"video_id,omitempty" db:"video_id"`
	CommentID *string   `json:"comment_id,omitempty" db:"comment_id"`
	TweetID   *string   `json:"tweet_id,omitempty" db:"tweet_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Subscription links a subscriber to a channel (both users).
type Subscription struct {
	ID           string    `json:"id" db:"id"`
	SubscriberID string    `json:"subscriber_id" db:"subscriber_id"`
	ChannelID    string    `json:"channel_id" db:"channel_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
