package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/middleware"
)

// Toggle video like endpoint
func (api *API) toggleVideoLike(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	liked, err := api.store.ToggleVideoLike(c.Request.Context(), user.ID, videoID)
	if err != nil {
		api.respondStoreError(c, err, "Video not found")
		return
	}

	metrics.RecordToggle("video_like", liked)
	respond(c, http.StatusOK, gin.H{"liked": liked}, toggleMessage(liked, "Video"))
}

// Toggle comment like endpoint
func (api *API) toggleCommentLike(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	liked, err := api.store.ToggleCommentLike(c.Request.Context(), user.ID, commentID)
	if err != nil {
		api.respondStoreError(c, err, "Comment not found")
		return
	}

	metrics.RecordToggle("comment_like", liked)
	respond(c, http.StatusOK, gin.H{"liked": liked}, toggleMessage(liked, "Comment"))
}

// Toggle tweet like endpoint
func (api *API) toggleTweetLike(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	liked, err := api.store.ToggleTweetLike(c.Request.Context(), user.ID, tweetID)
	if err != nil {
		api.respondStoreError(c, err, "Tweet not found")
		return
	}

	metrics.RecordToggle("tweet_like", liked)
	respond(c, http.StatusOK, gin.H{"liked": liked}, toggleMessage(liked, "Tweet"))
}

// Liked videos endpoint
func (api *API) likedVideos(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	videos, err := api.store.GetLikedVideos(c.Request.Context(), user.ID)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, videos, "Liked videos fetched successfully")
}

// Liked tweets endpoint
func (api *API) likedTweets(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	tweets, err := api.store.GetLikedTweets(c.Request.Context(), user.ID)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, tweets, "Liked tweets fetched successfully")
}

func toggleMessage(on bool, target string) string {
	if on {
		return target + " liked successfully"
	}
	return target + " unliked successfully"
}
