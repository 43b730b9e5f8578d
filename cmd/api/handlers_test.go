package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

func newTestAPI(t *testing.T, store *MockStore) *API {
	t.Helper()
	log, err := logging.NewDefaultLogger()
	require.NoError(t, err)

	return &API{
		store: store,
		log:   log,
		uploads: config.UploadsConfig{
			TempDir:      t.TempDir(),
			MaxImageSize: 10 * 1024 * 1024,
			MaxVideoSize: 1024 * 1024 * 1024,
		},
	}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser injects an authenticated user the way the auth middleware would.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthContextKey, user)
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerForm(t *testing.T, withAvatar bool) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("fullname", "Alice Example"))
	require.NoError(t, mw.WriteField("email", "alice@example.com"))
	require.NoError(t, mw.WriteField("username", "alice"))
	require.NoError(t, mw.WriteField("password", "s3cret"))
	if withAvatar {
		fw, err := mw.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("not really a png"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestRegisterExcludesSensitiveFields(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	media := new(MockMedia)

	api := newTestAPI(t, store)
	api.media = media

	media.On("Store", mock.Anything, mock.Anything, "avatars").
		Return(models.MediaRef{URL: "http://cdn/avatars/a.png", Key: "avatars/a.png"}, nil)
	store.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

	router.POST("/api/v1/users/register", api.register)

	body, contentType := registerForm(t, true)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "refreshToken")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password_hash")

	store.AssertExpectations(t)
	media.AssertExpectations(t)
}

func TestRegisterRequiresAvatar(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	router.POST("/api/v1/users/register", api.register)

	body, contentType := registerForm(t, false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterCleansUpMediaOnConflict(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	media := new(MockMedia)

	api := newTestAPI(t, store)
	api.media = media

	media.On("Store", mock.Anything, mock.Anything, "avatars").
		Return(models.MediaRef{URL: "http://cdn/avatars/a.png", Key: "avatars/a.png"}, nil)
	store.On("CreateUser", mock.Anything, mock.Anything).Return(database.ErrConflict)
	media.On("Remove", mock.Anything, "avatars/a.png").Return(nil)

	router.POST("/api/v1/users/register", api.register)

	body, contentType := registerForm(t, true)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/users/register", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	media.AssertCalled(t, "Remove", mock.Anything, "avatars/a.png")
}

func TestLoginSuccess(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	tokens := new(MockTokens)

	api := newTestAPI(t, store)
	api.tokens = tokens

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New().String(), Username: "alice", PasswordHash: hash}

	store.On("GetUserByUsernameOrEmail", mock.Anything, "alice", "").Return(user, nil)
	tokens.On("IssuePair", mock.Anything, user.ID).
		Return(models.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil)

	router.POST("/api/v1/users/login", api.login)

	w := httptest.NewRecorder()
	payload := `{"username":"alice","password":"correct-horse"}`
	req, _ := http.NewRequest("POST", "/api/v1/users/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		names = append(names, cookie.Name)
	}
	assert.Contains(t, names, "accessToken")
	assert.Contains(t, names, "refreshToken")
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New().String(), Username: "alice", PasswordHash: hash}

	store.On("GetUserByUsernameOrEmail", mock.Anything, "alice", "").Return(user, nil)

	router.POST("/api/v1/users/login", api.login)

	w := httptest.NewRecorder()
	payload := `{"username":"alice","password":"wrong"}`
	req, _ := http.NewRequest("POST", "/api/v1/users/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenRejectsSuperseded(t *testing.T) {
	router := setupTestRouter()
	tokens := new(MockTokens)

	api := newTestAPI(t, new(MockStore))
	api.tokens = tokens

	tokens.On("RotateRefresh", mock.Anything, "stale-token").
		Return(models.TokenPair{}, nil, auth.ErrTokenMismatch)

	router.POST("/api/v1/users/refresh-token", api.refreshToken)

	w := httptest.NewRecorder()
	payload := `{"refreshToken":"stale-token"}`
	req, _ := http.NewRequest("POST", "/api/v1/users/refresh-token", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteVideoNonOwnerForbidden(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	videoID := uuid.New().String()
	alice := &models.User{ID: uuid.New().String(), Username: "alice"}
	bob := &models.User{ID: uuid.New().String(), Username: "bob"}

	store.On("GetVideo", mock.Anything, videoID).
		Return(&models.Video{ID: videoID, OwnerID: alice.ID, IsPublished: true}, nil)

	router.DELETE("/api/v1/videos/:videoId", asUser(bob), api.deleteVideo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/v1/videos/"+videoID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "DeleteVideo", mock.Anything, mock.Anything)
}

func TestToggleVideoLikeReportsState(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	videoID := uuid.New().String()
	alice := &models.User{ID: uuid.New().String(), Username: "alice"}

	// First call creates the like, second removes it
	store.On("ToggleVideoLike", mock.Anything, alice.ID, videoID).Return(true, nil).Once()
	store.On("ToggleVideoLike", mock.Anything, alice.ID, videoID).Return(false, nil).Once()

	router.POST("/api/v1/likes/toggle/v/:videoId", asUser(alice), api.toggleVideoLike)

	for _, expected := range []bool{true, false} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/likes/toggle/v/"+videoID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeEnvelope(t, w)
		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, expected, data["liked"])
	}

	store.AssertExpectations(t)
}

func TestToggleLikeUnknownTarget(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	videoID := uuid.New().String()
	alice := &models.User{ID: uuid.New().String()}

	store.On("ToggleVideoLike", mock.Anything, alice.ID, videoID).
		Return(false, database.ErrNotFound)

	router.POST("/api/v1/likes/toggle/v/:videoId", asUser(alice), api.toggleVideoLike)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/likes/toggle/v/"+videoID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVideoHidesDraftsFromOthers(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	videoID := uuid.New().String()
	bob := &models.User{ID: uuid.New().String()}

	store.On("GetVideo", mock.Anything, videoID).
		Return(&models.Video{ID: videoID, OwnerID: uuid.New().String(), IsPublished: false}, nil)

	router.GET("/api/v1/videos/:videoId", asUser(bob), api.getVideo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/videos/"+videoID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVideoRecordsView(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	videoID := uuid.New().String()
	alice := &models.User{ID: uuid.New().String()}

	store.On("GetVideo", mock.Anything, videoID).
		Return(&models.Video{ID: videoID, OwnerID: uuid.New().String(), IsPublished: true, Views: 5}, nil)
	store.On("IncrementViews", mock.Anything, videoID).Return(nil)
	store.On("RecordWatch", mock.Anything, alice.ID, videoID).Return(nil)

	router.GET("/api/v1/videos/:videoId", asUser(alice), api.getVideo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/videos/"+videoID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(6), data["views"])
	store.AssertExpectations(t)
}

func TestGetVideoInvalidID(t *testing.T) {
	router := setupTestRouter()
	api := newTestAPI(t, new(MockStore))

	router.GET("/api/v1/videos/:videoId", api.getVideo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/videos/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCommentNonOwnerForbidden(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	commentID := uuid.New().String()
	bob := &models.User{ID: uuid.New().String()}

	store.On("GetComment", mock.Anything, commentID).
		Return(&models.Comment{ID: commentID, OwnerID: uuid.New().String(), Content: "hi"}, nil)

	router.PATCH("/api/v1/comments/:commentId", asUser(bob), api.updateComment)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/v1/comments/"+commentID, strings.NewReader(`{"content":"edited"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "UpdateComment", mock.Anything, mock.Anything)
}

func TestAddVideoToPlaylistRejectsDuplicate(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	alice := &models.User{ID: uuid.New().String()}
	playlistID := uuid.New().String()
	videoID := uuid.New().String()

	store.On("GetPlaylist", mock.Anything, playlistID).
		Return(&models.Playlist{ID: playlistID, OwnerID: alice.ID}, nil)
	store.On("GetVideo", mock.Anything, videoID).
		Return(&models.Video{ID: videoID, IsPublished: true}, nil)
	store.On("AddVideoToPlaylist", mock.Anything, playlistID, videoID).
		Return(database.ErrConflict)

	router.POST("/api/v1/playlists/p/:playlistId/videos/:videoId", asUser(alice), api.addVideoToPlaylist)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/playlists/p/"+playlistID+"/videos/"+videoID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubscribeToOwnChannelRejected(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	alice := &models.User{ID: uuid.New().String()}

	router.POST("/api/v1/subscriptions/c/:channelId", asUser(alice), api.toggleSubscription)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/subscriptions/c/"+alice.ID, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "ToggleSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func TestChannelStats(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	alice := &models.User{ID: uuid.New().String(), Username: "alice"}

	store.On("GetChannelStats", mock.Anything, alice.ID).Return(&models.ChannelStats{
		Username:         "alice",
		TotalVideos:      3,
		TotalLikes:       6,
		AvgLikesPerVideo: 2.0,
	}, nil)

	router.GET("/api/v1/dashboard/stats", asUser(alice), api.channelStats)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/dashboard/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["totalVideos"])
	assert.Equal(t, float64(6), data["totalLikes"])
	assert.Equal(t, float64(2), data["avgLikesPerVideo"])
}

func TestChannelProfileNotFound(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	store.On("GetChannelProfile", mock.Anything, "ghost", "").
		Return(nil, database.ErrNotFound)

	router.GET("/api/v1/users/c/:username", api.channelProfile)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/users/c/ghost", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListVideosPassesQueryOptions(t *testing.T) {
	router := setupTestRouter()
	store := new(MockStore)
	api := newTestAPI(t, store)

	store.On("ListVideos", mock.Anything, database.VideoListOptions{
		Page:  2,
		Limit: 5,
		Query: "cats",
	}).Return(&models.VideoPage{Page: 2, Limit: 5}, nil)

	router.GET("/api/v1/videos", api.listVideos)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/videos?page=2&limit=5&query=cats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}
