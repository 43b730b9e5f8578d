package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/pkg/models"
)

// fakeUserStore is an in-memory UserStore for exercising the token
// lifecycle without a database.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) SetRefreshToken(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (s *fakeUserStore) ClearRefreshToken(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.RefreshToken = ""
	}
	return nil
}

func newTestService(store *fakeUserStore) *TokenService {
	return NewTokenService(store, "access-secret", "refresh-secret", 15*time.Minute, 10*24*time.Hour)
}

func TestIssuePairAndVerifyAccess(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "alice"}
	store := newFakeUserStore(user)
	svc := newTestService(store)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	loaded, err := svc.VerifyAccess(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
	assert.Equal(t, "alice", loaded.Username)
}

func TestIssuePairUnknownUser(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	_, err := svc.IssuePair(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifyAccessRejectsBadTokens(t *testing.T) {
	user := &models.User{ID: "user-1"}
	store := newFakeUserStore(user)
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.VerifyAccess(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccess(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A refresh token is not an access token
	pair, err := svc.IssuePair(ctx, user.ID)
	require.NoError(t, err)
	_, err = svc.VerifyAccess(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessExpiredToken(t *testing.T) {
	user := &models.User{ID: "user-1"}
	store := newFakeUserStore(user)
	svc := NewTokenService(store, "access-secret", "refresh-secret", -time.Minute, time.Hour)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessUserDeletedAfterIssuance(t *testing.T) {
	user := &models.User{ID: "user-1"}
	store := newFakeUserStore(user)
	svc := newTestService(store)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	delete(store.users, user.ID)

	_, err = svc.VerifyAccess(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRotateRefreshInvalidatesPreviousToken(t *testing.T) {
	user := &models.User{ID: "user-1"}
	store := newFakeUserStore(user)
	svc := newTestService(store)
	ctx := context.Background()

	first, err := svc.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	second, user2, err := svc.RotateRefresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, user2)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Single active lineage: the superseded token is rejected.
	_, _, err = svc.RotateRefresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenMismatch)

	// The current one still rotates fine.
	_, _, err = svc.RotateRefresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

func TestRotateRefreshAfterRevoke(t *testing.T) {
	user := &models.User{ID: "user-1"}
	store := newFakeUserStore(user)
	svc := newTestService(store)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, user.ID))

	_, _, err = svc.RotateRefresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenMismatch)
}

func TestRotateRefreshRejectsAccessToken(t *testing.T) {
	user := &models.User{ID: "user-1"}
	store := newFakeUserStore(user)
	svc := newTestService(store)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	_, _, err = svc.RotateRefresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
