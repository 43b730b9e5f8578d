package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/events"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

// List videos endpoint. Public: published videos only, optional full-text
// query and owner filter, paginated.
func (api *API) listVideos(c *gin.Context) {
	page, limit := pageParams(c)

	ownerID := c.Query("userId")
	if ownerID != "" {
		if _, err := uuid.Parse(ownerID); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid userId")
			return
		}
	}

	videos, err := api.store.ListVideos(c.Request.Context(), database.VideoListOptions{
		Page:    page,
		Limit:   limit,
		Query:   c.Query("query"),
		OwnerID: ownerID,
	})
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, videos, "Videos fetched successfully")
}

// Publish video endpoint. Multipart form: title, description,
// videoFile (required), thumbnail (required).
func (api *API) publishVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	title := c.PostForm("title")
	if title == "" {
		respondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Video file is required")
		return
	}
	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Thumbnail is required")
		return
	}

	videoRef, err := api.storeUpload(c, videoFile, "videos", api.uploads.MaxVideoSize)
	if err == errFileTooLarge {
		respondError(c, http.StatusBadRequest, "Video file too large")
		return
	}
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	thumbRef, err := api.storeUpload(c, thumbFile, "thumbnails", api.uploads.MaxImageSize)
	if err != nil {
		api.removeMedia(c, videoRef.Key)
		if err == errFileTooLarge {
			respondError(c, http.StatusBadRequest, "Thumbnail too large")
			return
		}
		api.respondStoreError(c, err, "")
		return
	}

	video := &models.Video{
		OwnerID:      user.ID,
		Title:        title,
		Description:  c.PostForm("description"),
		VideoFile:    videoRef.URL,
		VideoFileKey: videoRef.Key,
		Thumbnail:    thumbRef.URL,
		ThumbnailKey: thumbRef.Key,
		IsPublished:  true,
	}

	if err := api.store.CreateVideo(c.Request.Context(), video); err != nil {
		api.removeMedia(c, videoRef.Key)
		api.removeMedia(c, thumbRef.Key)
		api.respondStoreError(c, err, "")
		return
	}

	api.invalidateStats(c, user.ID)
	api.publishEvent(c, events.VideoPublished, user.ID, video.ID)
	respond(c, http.StatusCreated, video, "Video published successfully")
}

// Get video endpoint. Drafts are only visible to their owner. A view by an
// authenticated user bumps the counter and lands in watch history.
func (api *API) getVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	video, err := api.store.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}

	viewerID := middleware.GetUserID(c)
	if !video.IsPublished && video.OwnerID != viewerID {
		respondError(c, http.StatusNotFound, "Video not found")
		return
	}

	if viewerID != "" && video.IsPublished {
		if err := api.store.IncrementViews(c.Request.Context(), videoID); err == nil {
			video.Views++
			metrics.RecordVideoView()
		}
		if err := api.store.RecordWatch(c.Request.Context(), viewerID, videoID); err != nil {
			api.log.WithVideoID(videoID).ErrorWithErr("failed to record watch", err)
		}
	}

	respond(c, http.StatusOK, video, "Video fetched successfully")
}

// Update video endpoint. Owner only. Title/description in the form, plus
// an optional replacement thumbnail.
func (api *API) updateVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	video, err := api.store.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}
	if video.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this video")
		return
	}

	if title := c.PostForm("title"); title != "" {
		video.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		video.Description = description
	}

	var oldThumbKey, newThumbKey string
	if thumbFile, ferr := c.FormFile("thumbnail"); ferr == nil {
		ref, err := api.storeUpload(c, thumbFile, "thumbnails", api.uploads.MaxImageSize)
		if err == errFileTooLarge {
			respondError(c, http.StatusBadRequest, "Thumbnail too large")
			return
		}
		if err != nil {
			api.respondStoreError(c, err, "")
			return
		}
		oldThumbKey = video.ThumbnailKey
		newThumbKey = ref.Key
		video.Thumbnail = ref.URL
		video.ThumbnailKey = ref.Key
	}

	if err := api.store.UpdateVideo(c.Request.Context(), video); err != nil {
		api.removeMedia(c, newThumbKey)
		api.respondStoreError(c, err, "Video not found")
		return
	}

	api.removeMedia(c, oldThumbKey)
	respond(c, http.StatusOK, video, "Video updated successfully")
}

// Delete video endpoint. Owner only; stored media goes with the row.
func (api *API) deleteVideo(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	video, err := api.store.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}
	if video.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this video")
		return
	}

	if err := api.store.DeleteVideo(c.Request.Context(), videoID); err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}

	api.removeMedia(c, video.VideoFileKey)
	api.removeMedia(c, video.ThumbnailKey)

	api.invalidateStats(c, user.ID)
	api.publishEvent(c, events.VideoDeleted, user.ID, videoID)
	respond(c, http.StatusOK, nil, "Video deleted successfully")
}

// Toggle publish status endpoint. Owner only.
func (api *API) togglePublishStatus(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	video, err := api.store.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}
	if video.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this video")
		return
	}

	video.IsPublished = !video.IsPublished
	if err := api.store.UpdateVideo(c.Request.Context(), video); err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}

	api.invalidateStats(c, user.ID)
	respond(c, http.StatusOK, video, "Publish status toggled successfully")
}

// invalidateStats drops the cached dashboard stats after a write that
// changes them.
func (api *API) invalidateStats(c *gin.Context, channelID string) {
	if api.statsCache == nil {
		return
	}
	if err := api.statsCache.InvalidateChannelStats(c.Request.Context(), channelID); err != nil {
		api.log.ErrorWithErr("failed to invalidate stats cache", err)
	}
}
