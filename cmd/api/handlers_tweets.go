package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/pkg/models"
)

type tweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create tweet endpoint
func (api *API) createTweet(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	tweet := &models.Tweet{
		OwnerID: user.ID,
		Content: req.Content,
	}
	if err := api.store.CreateTweet(c.Request.Context(), tweet); err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

// List user tweets endpoint. Supports sortBy/sortType plus pagination;
// defaults to newest first.
func (api *API) listUserTweets(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if _, err := api.store.GetUserByID(c.Request.Context(), userID); err != nil {
		api.respondStoreError(c, err, "User not found")
		return
	}

	page, limit := pageParams(c)
	tweets, err := api.store.ListUserTweets(c.Request.Context(), userID, page, limit,
		c.Query("sortBy"), c.Query("sortType"))
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, tweets, "Tweets fetched successfully")
}

// Update tweet endpoint. Owner only.
func (api *API) updateTweet(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	tweet, err := api.store.GetTweet(c.Request.Context(), tweetID)
	if err != nil {
		api.respondStoreError(c, err, "Tweet not found")
		return
	}
	if tweet.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this tweet")
		return
	}

	tweet.Content = req.Content
	if err := api.store.UpdateTweet(c.Request.Context(), tweet); err != nil {
		api.respondStoreError(c, err, "Tweet not found")
		return
	}

	respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

// Delete tweet endpoint. Owner only.
func (api *API) deleteTweet(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	tweet, err := api.store.GetTweet(c.Request.Context(), tweetID)
	if err != nil {
		api.respondStoreError(c, err, "Tweet not found")
		return
	}
	if tweet.OwnerID != user.ID {
		respondError(c, http.StatusForbidden, "You are not the owner of this tweet")
		return
	}

	if err := api.store.DeleteTweet(c.Request.Context(), tweetID); err != nil {
		api.respondStoreError(c, err, "Tweet not found")
		return
	}

	respond(c, http.StatusOK, nil, "Tweet deleted successfully")
}
