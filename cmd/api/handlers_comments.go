package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/events"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

// List video comments endpoint. Paginated, newest first.
func (api *API) listVideoComments(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if _, err := api.store.GetVideo(c.Request.Context(), videoID); err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}

	page, limit := pageParams(c)
	comments, err := api.store.ListVideoComments(c.Request.Context(), videoID, page, limit)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, comments, "Comments fetched successfully")
}

// List tweet comments endpoint
func (api *API) listTweetComments(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	if _, err := api.store.GetTweet(c.Request.Context(), tweetID); err != nil {
		api.respondStoreError(c, err, "Tweet not found")
		return
	}

	page, limit := pageParams(c)
	comments, err := api.store.ListTweetComments(c.Request.Context(), tweetID, page, limit)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, comments, "Comments fetched successfully")
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Add video comment endpoint
func (api *API) addVideoComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	if _, err := api.store.GetVideo(c.Request.Context(), videoID); err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}

	comment := &models.Comment{
		OwnerID: user.ID,
		Content: req.Content,
		VideoID: &videoID,
	}
	if err := api.store.CreateComment(c.Request.Context(), comment); err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	api.publishEvent(c, events.CommentAdded, user.ID, comment.ID)
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

// Add tweet comment endpoint
func (api *API) addTweetComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	if _, err := api.store.GetTweet(c.Request.Context(), tweetID); err != nil {
		api.respondStoreError(c, err, "Tweet not found")
		return
	}

	comment := &models.Comment{
		OwnerID: user.ID,
		Content: req.Content,
		TweetID: &tweetID,
	}
	if err := api.store.CreateComment(c.Request.Context(), comment); err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	api.publishEvent(c, events.CommentAdded, user.ID, comment.ID)
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

// Update comment endpoint. Owner only.
func (api *API) updateComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	comment, err := api.store.GetComment(c.Request.Context(), commentID)
	if err != nil {
		api.respondStoreError(c, err, "Comment not found")
		return
	}
	if comment.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this comment")
		return
	}

	comment.Content = req.Content
	if err := api.store.UpdateComment(c.Request.Context(), comment); err != nil {
		api.respondStoreError(c, err, "Comment not found")
		return
	}

	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

// Delete comment endpoint. Owner only.
func (api *API) deleteComment(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	comment, err := api.store.GetComment(c.Request.Context(), commentID)
	if err != nil {
		api.respondStoreError(c, err, "Comment not found")
		return
	}
	if comment.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this comment")
		return
	}

	if err := api.store.DeleteComment(c.Request.Context(), commentID); err != nil {
		api.respondStoreError(c, err, "Comment not found")
		return
	}

	respond(c, http.StatusOK, nil, "Comment deleted successfully")
}
