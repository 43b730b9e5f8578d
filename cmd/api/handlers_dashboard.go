package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/middleware"
)

// Channel stats endpoint. Owner-facing dashboard aggregate, served through
// the stats cache when one is configured.
func (api *API) channelStats(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	if api.statsCache != nil {
		cached, err := api.statsCache.GetChannelStats(c.Request.Context(), user.ID)
		if err != nil {
			api.log.ErrorWithErr("stats cache read failed", err)
		}
		metrics.RecordCacheAccess("stats", cached != nil)
		if cached != nil {
			respond(c, http.StatusOK, cached, "Channel stats fetched successfully")
			return
		}
	}

	stats, err := api.store.GetChannelStats(c.Request.Context(), user.ID)
	if err != nil {
		api.respondStoreError(c, err, "Channel not found")
		return
	}

	if api.statsCache != nil {
		if err := api.statsCache.SetChannelStats(c.Request.Context(), user.ID, stats); err != nil {
			api.log.ErrorWithErr("stats cache write failed", err)
		}
	}

	respond(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

// Channel videos endpoint. All of the owner's videos, drafts included.
func (api *API) channelVideos(c *gin.Context) {
	user, _ := middleware.GetUser(c)

	videos, err := api.store.ListChannelVideos(c.Request.Context(), user.ID)
	if err != nil {
		api.respondStoreError(c, err, "")
		return
	}

	respond(c, http.StatusOK, videos, "Channel videos fetched successfully")
}

// Health check endpoint
func (api *API) healthCheck(c *gin.Context) {
	if err := api.store.Health(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "Service unhealthy")
		return
	}
	respond(c, http.StatusOK, gin.H{"healthy": true}, "OK")
}
