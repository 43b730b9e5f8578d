package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/events"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/middleware"
)

// Toggle subscription endpoint. Self-subscription is rejected.
func (api *API) toggleSubscription(c *gin.Context) {
	user, _ := middleware.GetUser(c)
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	if channelID == user.ID {
		respondError(c, http.StatusBadRequest, "You cannot subscribe to your own channel")
		return
	}

	subscribed, err := api.store.ToggleSubscription(c.Request.Context(), user.ID, channelID)
	if err != nil {
		api.respondStoreError(c, err, "Channel not found")
		return
	}

	metrics.RecordToggle("subscription", subscribed)
	api.invalidateStats(c, channelID)
	api.publishEvent(c, events.SubscriptionToggle, user.ID, channelID)

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	respond(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

// List channel subscribers endpoint
func (api *API) listChannelSubscribers(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	if _, err := api.store.GetUserByID(c.Request.Context(), channelID); err != nil {
		api.respondStoreError(c, err, "Channel not found")
		return
	}

	subscribers, err := api.store.ListChannelSubscribers(c.Request.Context(), channelID)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// List subscribed channels endpoint
func (api *API) listSubscribedChannels(c *gin.Context) {
	subscriberID, ok := pathID(c, "subscriberId")
	if !ok {
		return
	}

	if _, err := api.store.GetUserByID(c.Request.Context(), subscriberID); err != nil {
		api.respondStoreError(c, err, "User not found")
		return
	}

	channels, err := api.store.ListSubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
