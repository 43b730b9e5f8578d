package main

import (
	"context"

	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/pkg/models"
)

// Store is the persistence surface the handlers depend on. Satisfied by
// *database.Repository in production and by a mock in tests.
type Store interface {
	Health(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	RecordWatch(ctx context.Context, userID, videoID string) error

	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	UpdateVideo(ctx context.Context, video *models.Video) error
	DeleteVideo(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id string) error

	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetTweet(ctx context.Context, id string) (*models.Tweet, error)
	UpdateTweet(ctx context.Context, tweet *models.Tweet) error
	DeleteTweet(ctx context.Context, id string) error

	ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error)
	ToggleTweetLike(ctx context.Context, userID, tweetID string) (bool, error)
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error)

	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	GetPlaylistDetail(ctx context.Context, id string) (*models.PlaylistDetail, error)
	ListUserPlaylists(ctx context.Context, ownerID string) ([]*models.PlaylistDetail, error)
	UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
	AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) error
	RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID string) error

	GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error)
	GetChannelStats(ctx context.Context, ownerID string) (*models.ChannelStats, error)
	GetWatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error)
	GetLikedVideos(ctx context.Context, userID string) ([]models.LikedVideo, error)
	GetLikedTweets(ctx context.Context, userID string) ([]models.LikedTweet, error)
	ListVideoComments(ctx context.Context, videoID string, page, limit int) (*models.CommentPage, error)
	ListTweetComments(ctx context.Context, tweetID string, page, limit int) (*models.CommentPage, error)
	ListUserTweets(ctx context.Context, userID string, page, limit int, sortBy, sortType string) ([]models.TweetWithOwner, error)
	ListChannelSubscribers(ctx context.Context, channelID string) ([]models.Subscriber, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]models.SubscribedChannel, error)
	ListChannelVideos(ctx context.Context, ownerID string) ([]*models.Video, error)
	ListVideos(ctx context.Context, opts database.VideoListOptions) (*models.VideoPage, error)
}

// TokenIssuer is the auth surface the handlers depend on.
type TokenIssuer interface {
	IssuePair(ctx context.Context, userID string) (models.TokenPair, error)
	VerifyAccess(ctx context.Context, raw string) (*models.User, error)
	RotateRefresh(ctx context.Context, raw string) (models.TokenPair, *models.User, error)
	Revoke(ctx context.Context, userID string) error
}

// MediaStore stores uploaded files and hands back a URL plus removal key.
type MediaStore interface {
	Store(ctx context.Context, localPath, prefix string) (models.MediaRef, error)
	Remove(ctx context.Context, key string) error
}

// EventPublisher emits domain events for downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, actorID, subjectID string) error
}

// StatsCache is the read-through cache in front of the dashboard stats.
type StatsCache interface {
	GetChannelStats(ctx context.Context, channelID string) (*models.ChannelStats, error)
	SetChannelStats(ctx context.Context, channelID string, stats *models.ChannelStats) error
	InvalidateChannelStats(ctx context.Context, channelID string) error
}
