package main

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/pkg/models"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *MockStore) RecordWatch(ctx context.Context, userID, videoID string) error {
	return m.Called(ctx, userID, videoID).Error(0)
}

func (m *MockStore) CreateVideo(ctx context.Context, video *models.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *MockStore) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockStore) UpdateVideo(ctx context.Context, video *models.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *MockStore) DeleteVideo(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockStore) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockStore) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockStore) DeleteComment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}

func (m *MockStore) GetTweet(ctx context.Context, id string) (*models.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tweet), args.Error(1)
}

func (m *MockStore) UpdateTweet(ctx context.Context, tweet *models.Tweet) error {
	return m.Called(ctx, tweet).Error(0)
}

func (m *MockStore) DeleteTweet(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error) {
	args := m.Called(ctx, userID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ToggleCommentLike(ctx context.Context, userID, commentID string) (bool, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ToggleTweetLike(ctx context.Context, userID, tweetID string) (bool, error) {
	args := m.Called(ctx, userID, tweetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *MockStore) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockStore) GetPlaylistDetail(ctx context.Context, id string) (*models.PlaylistDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaylistDetail), args.Error(1)
}

func (m *MockStore) ListUserPlaylists(ctx context.Context, ownerID string) ([]*models.PlaylistDetail, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlaylistDetail), args.Error(1)
}

func (m *MockStore) UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *MockStore) DeletePlaylist(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) error {
	return m.Called(ctx, playlistID, videoID).Error(0)
}

func (m *MockStore) RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID string) error {
	return m.Called(ctx, playlistID, videoID).Error(0)
}

func (m *MockStore) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	args := m.Called(ctx, username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelProfile), args.Error(1)
}

func (m *MockStore) GetChannelStats(ctx context.Context, ownerID string) (*models.ChannelStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelStats), args.Error(1)
}

func (m *MockStore) GetWatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VideoWithOwner), args.Error(1)
}

func (m *MockStore) GetLikedVideos(ctx context.Context, userID string) ([]models.LikedVideo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LikedVideo), args.Error(1)
}

func (m *MockStore) GetLikedTweets(ctx context.Context, userID string) ([]models.LikedTweet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LikedTweet), args.Error(1)
}

func (m *MockStore) ListVideoComments(ctx context.Context, videoID string, page, limit int) (*models.CommentPage, error) {
	args := m.Called(ctx, videoID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentPage), args.Error(1)
}

func (m *MockStore) ListTweetComments(ctx context.Context, tweetID string, page, limit int) (*models.CommentPage, error) {
	args := m.Called(ctx, tweetID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentPage), args.Error(1)
}

func (m *MockStore) ListUserTweets(ctx context.Context, userID string, page, limit int, sortBy, sortType string) ([]models.TweetWithOwner, error) {
	args := m.Called(ctx, userID, page, limit, sortBy, sortType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TweetWithOwner), args.Error(1)
}

func (m *MockStore) ListChannelSubscribers(ctx context.Context, channelID string) ([]models.Subscriber, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscriber), args.Error(1)
}

func (m *MockStore) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]models.SubscribedChannel, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscribedChannel), args.Error(1)
}

func (m *MockStore) ListChannelVideos(ctx context.Context, ownerID string) ([]*models.Video, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Video), args.Error(1)
}

func (m *MockStore) ListVideos(ctx context.Context, opts database.VideoListOptions) (*models.VideoPage, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoPage), args.Error(1)
}

// MockTokens is a mock implementation of TokenIssuer
type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) IssuePair(ctx context.Context, userID string) (models.TokenPair, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.TokenPair), args.Error(1)
}

func (m *MockTokens) VerifyAccess(ctx context.Context, raw string) (*models.User, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockTokens) RotateRefresh(ctx context.Context, raw string) (models.TokenPair, *models.User, error) {
	args := m.Called(ctx, raw)
	var user *models.User
	if args.Get(1) != nil {
		user = args.Get(1).(*models.User)
	}
	return args.Get(0).(models.TokenPair), user, args.Error(2)
}

func (m *MockTokens) Revoke(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// MockMedia is a mock implementation of MediaStore
type MockMedia struct {
	mock.Mock
}

func (m *MockMedia) Store(ctx context.Context, localPath, prefix string) (models.MediaRef, error) {
	args := m.Called(ctx, localPath, prefix)
	return args.Get(0).(models.MediaRef), args.Error(1)
}

func (m *MockMedia) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
