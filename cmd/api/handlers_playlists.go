package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

// Create playlist endpoint
func (api *API) createPlaylist(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name is required")
		return
	}

	playlist := &models.Playlist{
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := api.store.CreatePlaylist(c.Request.Context(), playlist); err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusCreated, playlist, "Playlist created successfully")
}

// Get playlist endpoint. Returns the playlist with owner and resolved
// member videos in order.
func (api *API) getPlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	detail, err := api.store.GetPlaylistDetail(c.Request.Context(), playlistID)
	if err != nil {
		api.respondStoreError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, detail, "Playlist fetched successfully")
}

// List user playlists endpoint
func (api *API) listUserPlaylists(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if _, err := api.store.GetUserByID(c.Request.Context(), userID); err != nil {
		api.respondStoreError(c, err, "User not found")
		return
	}

	playlists, err := api.store.ListUserPlaylists(c.Request.Context(), userID)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, playlists, "Playlists fetched successfully")
}

// loadOwnedPlaylist fetches the playlist and enforces the ownership check
// shared by every playlist mutation.
func (api *API) loadOwnedPlaylist(c *gin.Context, playlistID string) (*models.Playlist, bool) {
	user, _ := middleware.GetUser(c)

	playlist, err := api.store.GetPlaylist(c.Request.Context(), playlistID)
	if err != nil {
		api.respondStoreError(c, err, "Playlist not found")
		return nil, false
	}
	if playlist.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this playlist")
		return nil, false
	}
	return playlist, true
}

// Update playlist endpoint. Owner only.
func (api *API) updatePlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Name == "" && req.Description == "") {
		respondError(c, http.StatusBadRequest, "Name or description is required")
		return
	}

	playlist, ok := api.loadOwnedPlaylist(c, playlistID)
	if !ok {
		return
	}

	if req.Name != "" {
		playlist.Name = req.Name
	}
	if req.Description != "" {
		playlist.Description = req.Description
	}

	if err := api.store.UpdatePlaylist(c.Request.Context(), playlist); err != nil {
		api.respondStoreError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete playlist endpoint. Owner only.
func (api *API) deletePlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	if _, ok := api.loadOwnedPlaylist(c, playlistID); !ok {
		return
	}

	if err := api.store.DeletePlaylist(c.Request.Context(), playlistID); err != nil {
		api.respondStoreError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, nil, "Playlist deleted successfully")
}

// Add video to playlist endpoint. Owner only; duplicates rejected.
func (api *API) addVideoToPlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if _, ok := api.loadOwnedPlaylist(c, playlistID); !ok {
		return
	}

	if _, err := api.store.GetVideo(c.Request.Context(), videoID); err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}

	if err := api.store.AddVideoToPlaylist(c.Request.Context(), playlistID, videoID); err != nil {
		api.respondStoreError(c, err, "Video already in playlist")
		return
	}

	respond(c, http.StatusOK, nil, "Video added to playlist successfully")
}

// Remove video from playlist endpoint. Owner only.
func (api *API) removeVideoFromPlaylist(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if _, ok := api.loadOwnedPlaylist(c, playlistID); !ok {
		return
	}

	if err := api.store.RemoveVideoFromPlaylist(c.Request.Context(), playlistID, videoID); err != nil {
		api.respondStoreError(c, err, "Video not in playlist")
		return
	}

	respond(c, http.StatusOK, nil, "Video removed from playlist successfully")
}
