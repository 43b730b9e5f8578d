package models

import (
	"time"
)

// ChannelProfile is the public profile view of a channel with computed
// subscription counts relative to the requesting identity.
type ChannelProfile struct {
	ID                string `json:"id" db:"id"`
	Username          string `json:"username" db:"username"`
	Email             string `json:"email" db:"email"`
	FullName          string `json:"fullname" db:"full_name"`
	Avatar            string `json:"avatar" db:"avatar"`
	CoverImage        string `json:"coverImage" db:"cover_image"`
	SubscriberCount   int64  `json:"subscriberCount" db:"subscriber_count"`
	SubscribedToCount int64  `json:"subscribedToCount" db:"subscribed_to_count"`
	IsSubscribed      bool   `json:"isSubscribed" db:"is_subscribed"`
}

// ChannelStats is the owner-facing dashboard aggregate.
type ChannelStats struct {
	Username         string  `json:"username"`
	FullName         string  `json:"fullname"`
	Avatar           string  `json:"avatar"`
	CoverImage       string  `json:"coverImage"`
	TotalVideos      int64   `json:"totalVideos"`
	TotalViews       int64   `json:"totalViews"`
	TotalSubscribers int64   `json:"totalSubscribers"`
	TotalLikes       int64   `json:"totalLikes"`
	AvgLikesPerVideo float64 `json:"avgLikesPerVideo"`
}

// VideoWithOwner is a video joined with its reduced owner projection.
type VideoWithOwner struct {
	Video
	Owner OwnerSummary `json:"owner"`
}

// CommentWithOwner is a comment joined with its reduced owner projection.
type CommentWithOwner struct {
	Comment
	Owner OwnerSummary `json:"owner"`
}

// TweetWithOwner is a tweet joined with its reduced owner projection.
type TweetWithOwner struct {
	Tweet
	Owner OwnerSummary `json:"owner"`
}

// LikedVideo flattens a like record into the liked video plus owner.
type LikedVideo struct {
	LikeID    string       `json:"like_id"`
	LikedAt   time.Time    `json:"liked_at"`
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Thumbnail string       `json:"thumbnail"`
	Views     int64        `json:"views"`
	Owner     OwnerSummary `json:"owner"`
}

// LikedTweet flattens a like record into the liked tweet plus owner.
type LikedTweet struct {
	LikeID  string       `json:"like_id"`
	LikedAt time.Time    `json:"liked_at"`
	ID      string       `json:"id"`
	Content string       `json:"content"`
	Owner   OwnerSummary `json:"owner"`
}

// Subscriber is one entry in a channel's subscriber list.
type Subscriber struct {
	SubscribedAt time.Time `json:"subscribed_at"`
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullname"`
	Avatar       string    `json:"avatar"`
}

// SubscribedChannel is one entry in a user's subscribed-to list.
type SubscribedChannel struct {
	SubscribedAt time.Time `json:"subscribed_at"`
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullname"`
	Avatar       string    `json:"avatar"`
}

// CommentPage is an offset-paginated comment listing.
type CommentPage struct {
	Comments []CommentWithOwner `json:"comments"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	Total    int64              `json:"total"`
}

// VideoPage is an offset-paginated video listing.
type VideoPage struct {
	Videos []VideoWithOwner `json:"videos"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
	Total  int64            `json:"total"`
}
