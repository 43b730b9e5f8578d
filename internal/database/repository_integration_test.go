package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/pkg/models"
)

// Integration tests run against a real Postgres and are gated behind
// TEST_DATABASE_HOST so the default test run stays hermetic.
func setupTestRepository(t *testing.T) *Repository {
	host := os.Getenv("TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("Skipping integration test - set TEST_DATABASE_HOST to run")
	}

	db, err := New(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		DBName:   "vidtube_test",
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(context.Background()))
	return NewRepository(db)
}

func createTestUser(t *testing.T, repo *Repository, username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: "x",
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	t.Cleanup(func() {
		_, _ = repo.db.Pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}

func TestToggleVideoLikeIsItsOwnInverse(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	alice := createTestUser(t, repo, "alice_toggle")
	video := &models.Video{
		OwnerID:     alice.ID,
		Title:       "v1",
		VideoFile:   "videos/v1.mp4",
		VideoFileKey: "videos/v1.mp4",
		IsPublished: true,
	}
	require.NoError(t, repo.CreateVideo(ctx, video))

	liked, err := repo.ToggleVideoLike(ctx, alice.ID, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.ToggleVideoLike(ctx, alice.ID, video.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// Back to liked again
	liked, err = repo.ToggleVideoLike(ctx, alice.ID, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleSubscription(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	alice := createTestUser(t, repo, "alice_sub")
	bob := createTestUser(t, repo, "bob_sub")

	subscribed, err := repo.ToggleSubscription(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	profile, err := repo.GetChannelProfile(ctx, bob.Username, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscriberCount)
	assert.True(t, profile.IsSubscribed)

	subscribed, err = repo.ToggleSubscription(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)
}

func TestAddVideoToPlaylistRejectsDuplicates(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	alice := createTestUser(t, repo, "alice_pl")
	video := &models.Video{
		OwnerID:      alice.ID,
		Title:        "v1",
		VideoFile:    "videos/v1.mp4",
		VideoFileKey: "videos/v1.mp4",
		IsPublished:  true,
	}
	require.NoError(t, repo.CreateVideo(ctx, video))

	playlist := &models.Playlist{OwnerID: alice.ID, Name: "favs"}
	require.NoError(t, repo.CreatePlaylist(ctx, playlist))

	require.NoError(t, repo.AddVideoToPlaylist(ctx, playlist.ID, video.ID))
	err := repo.AddVideoToPlaylist(ctx, playlist.ID, video.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestChannelStatsMath(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	owner := createTestUser(t, repo, "stats_owner")
	likers := []*models.User{
		createTestUser(t, repo, "liker_one"),
		createTestUser(t, repo, "liker_two"),
		createTestUser(t, repo, "liker_three"),
		createTestUser(t, repo, "liker_four"),
	}

	// 3 videos with 2/0/4 likes
	likeCounts := []int{2, 0, 4}
	for i, n := range likeCounts {
		video := &models.Video{
			OwnerID:      owner.ID,
			Title:        "video",
			VideoFile:    "videos/v.mp4",
			VideoFileKey: "videos/v.mp4",
			IsPublished:  true,
		}
		require.NoError(t, repo.CreateVideo(ctx, video))
		for j := 0; j < n; j++ {
			liker := likers[j%len(likers)]
			liked, err := repo.ToggleVideoLike(ctx, liker.ID, video.ID)
			require.NoError(t, err)
			require.True(t, liked, "video %d like %d", i, j)
		}
	}

	stats, err := repo.GetChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalVideos)
	assert.Equal(t, int64(6), stats.TotalLikes)
	assert.Equal(t, 2.0, stats.AvgLikesPerVideo)
}
