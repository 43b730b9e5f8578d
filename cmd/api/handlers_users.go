package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/events"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

// setTokenCookies mirrors the token pair into httpOnly cookies so browser
// clients don't have to manage the Authorization header.
func (api *API) setTokenCookies(c *gin.Context, pair models.TokenPair) {
	c.SetCookie("accessToken", pair.AccessToken, 0, "/", "", api.secureCookies, true)
	c.SetCookie("refreshToken", pair.RefreshToken, 0, "/", "", api.secureCookies, true)
}

func (api *API) clearTokenCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", api.secureCookies, true)
	c.SetCookie("refreshToken", "", -1, "/", "", api.secureCookies, true)
}

// Register endpoint. Multipart form: fullname, email, username, password,
// avatar (required file), coverImage (optional file).
func (api *API) register(c *gin.Context) {
	fullName := c.PostForm("fullname")
	email := c.PostForm("email")
	username := c.PostForm("username")
	password := c.PostForm("password")

	var missing []string
	for field, value := range map[string]string{
		"fullname": fullName, "email": email, "username": username, "password": password,
	} {
		if value == "" {
			missing = append(missing, field+" is required")
		}
	}
	if len(missing) > 0 {
		respondError(c, http.StatusBadRequest, "All fields are required", missing...)
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Avatar file is required")
		return
	}

	avatar, err := api.storeUpload(c, avatarFile, "avatars", api.uploads.MaxImageSize)
	if err == errFileTooLarge {
		respondError(c, http.StatusBadRequest, "Avatar file too large")
		return
	}
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	var cover models.MediaRef
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		cover, err = api.storeUpload(c, coverFile, "covers", api.uploads.MaxImageSize)
		if err != nil {
			api.removeMedia(c, avatar.Key)
			if err == errFileTooLarge {
				respondError(c, http.StatusBadRequest, "Cover image too large")
				return
			}
			api.respondStoreError(c, err, "")
			return
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		api.removeMedia(c, avatar.Key)
		api.removeMedia(c, cover.Key)
		api.respondStoreError(c, err, "")
		return
	}

	user := &models.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  hash,
		Avatar:        avatar.URL,
		AvatarKey:     avatar.Key,
		CoverImage:    cover.URL,
		CoverImageKey: cover.Key,
	}

	if err := api.store.CreateUser(c.Request.Context(), user); err != nil {
		// Uploaded media is orphaned once the insert fails; clean it up.
		api.removeMedia(c, avatar.Key)
		api.removeMedia(c, cover.Key)
		api.respondStoreError(c, err, "User with email or username already exists")
		return
	}

	api.publishEvent(c, events.UserRegistered, user.ID, user.ID)
	respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login endpoint. Accepts username or email plus password.
func (api *API) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Username == "" && req.Email == "") {
		respondError(c, http.StatusBadRequest, "Username or email is required")
		return
	}

	user, err := api.store.GetUserByUsernameOrEmail(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		metrics.RecordLogin(false)
		api.respondStoreError(c, err, "User not found")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		metrics.RecordLogin(false)
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	pair, err := api.tokens.IssuePair(c.Request.Context(), user.ID)
	if err != nil {
		metrics.RecordLogin(false)
		api.respondStoreError(c, err, "User not found")
		return
	}

	metrics.RecordLogin(true)
	api.setTokenCookies(c, pair)
	respond(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout endpoint. Revokes the refresh token and clears cookies.
func (api *API) logout(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	if err := api.tokens.Revoke(c.Request.Context(), user.ID); err != nil {
		api.respondStoreError(c, err, "User not found")
		return
	}

	api.clearTokenCookies(c)
	respond(c, http.StatusOK, nil, "User logged out successfully")
}

// Refresh token endpoint. The incoming token comes from the cookie or the
// request body.
func (api *API) refreshToken(c *gin.Context) {
	raw, _ := c.Cookie("refreshToken")
	if raw == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		metrics.RecordTokenRefresh(false)
		respondError(c, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	pair, _, err := api.tokens.RotateRefresh(c.Request.Context(), raw)
	if err != nil {
		metrics.RecordTokenRefresh(false)
		api.respondStoreError(c, err, "User not found")
		return
	}

	metrics.RecordTokenRefresh(true)
	api.setTokenCookies(c, pair)
	respond(c, http.StatusOK, pair, "Access token refreshed")
}

// Change password endpoint
func (api *API) changePassword(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Old and new passwords are required")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		respondError(c, http.StatusUnauthorized, "Incorrect old password")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	if err := api.store.UpdatePassword(c.Request.Context(), user.ID, hash); err != nil {
		api.respondStoreError(c, err, "User not found")
		return
	}

	respond(c, http.StatusOK, nil, "Password changed successfully")
}

// Current user endpoint
func (api *API) currentUser(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	respond(c, http.StatusOK, user, "Current user fetched successfully")
}

// Update account endpoint. Only fullname and email are editable here.
func (api *API) updateAccount(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		FullName string `json:"fullname"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.FullName == "" && req.Email == "") {
		respondError(c, http.StatusBadRequest, "Fullname or email is required")
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := api.store.UpdateUser(c.Request.Context(), user); err != nil {
		api.respondStoreError(c, err, "Email already in use")
		return
	}

	respond(c, http.StatusOK, user, "Account details updated successfully")
}

// Update avatar endpoint
func (api *API) updateAvatar(c *gin.Context) {
	api.updateUserImage(c, "avatar", "avatars", func(u *models.User, ref models.MediaRef) string {
		old := u.AvatarKey
		u.Avatar = ref.URL
		u.AvatarKey = ref.Key
		return old
	})
}

// Update cover image endpoint
func (api *API) updateCoverImage(c *gin.Context) {
	api.updateUserImage(c, "coverImage", "covers", func(u *models.User, ref models.MediaRef) string {
		old := u.CoverImageKey
		u.CoverImage = ref.URL
		u.CoverImageKey = ref.Key
		return old
	})
}

// updateUserImage uploads the replacement image, swaps the reference on the
// user row and removes the superseded object afterwards.
func (api *API) updateUserImage(c *gin.Context, field, prefix string, swap func(*models.User, models.MediaRef) string) {
	user, _ := middleware.GetUser(c)

	file, err := c.FormFile(field)
	if err != nil {
		respondError(c, http.StatusBadRequest, field+" file is required")
		return
	}

	ref, err := api.storeUpload(c, file, prefix, api.uploads.MaxImageSize)
	if err == errFileTooLarge {
		respondError(c, http.StatusBadRequest, "File too large")
		return
	}
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	oldKey := swap(user, ref)

	if err := api.store.UpdateUser(c.Request.Context(), user); err != nil {
		api.removeMedia(c, ref.Key)
		api.respondStoreError(c, err, "User not found")
		return
	}

	api.removeMedia(c, oldKey)
	respond(c, http.StatusOK, user, "Image updated successfully")
}

// Channel profile endpoint. Works for anonymous viewers; isSubscribed is
// computed against the viewer when one is authenticated.
func (api *API) channelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		respondError(c, http.StatusBadRequest, "Username is required")
		return
	}

	profile, err := api.store.GetChannelProfile(c.Request.Context(), username, middleware.GetUserID(c))
	if err != nil {
		api.respondStoreError(c, err, "Channel not found")
		return
	}

	respond(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

// Watch history endpoint
func (api *API) watchHistory(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	history, err := api.store.GetWatchHistory(c.Request.Context(), user.ID)
	if err != nil {
		api.respondStoreError(c, err, "User not found")
		return
	}

	respond(c, http.StatusOK, history, "Watch history fetched successfully")
}

// publishEvent is best-effort: a broker hiccup never fails the request.
func (api *API) publishEvent(c *gin.Context, eventType, actorID, subjectID string) {
	if api.events == nil {
		return
	}
	if err := api.events.Publish(c.Request.Context(), eventType, actorID, subjectID); err != nil {
		api.log.WithField("event", eventType).ErrorWithErr("failed to publish event", err)
		metrics.RecordError("events", "publish")
	}
}
