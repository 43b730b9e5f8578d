package main

import (
	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/middleware"
)

func setupRouter(api *API, log *logging.Logger, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics())
	if limiter != nil {
		router.Use(middleware.RateLimit(limiter))
	}

	requireAuth := middleware.RequireAuth(api.tokens)
	optionalAuth := middleware.OptionalAuth(api.tokens)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/healthcheck", api.healthCheck)

		users := v1.Group("/users")
		{
			users.POST("/register", api.register)
			users.POST("/login", api.login)
			users.POST("/refresh-token", api.refreshToken)
			users.POST("/logout", requireAuth, api.logout)
			users.POST("/change-password", requireAuth, api.changePassword)
			users.GET("/current-user", requireAuth, api.currentUser)
			users.PATCH("/update-account", requireAuth, api.updateAccount)
			users.PATCH("/avatar", requireAuth, api.updateAvatar)
			users.PATCH("/cover-image", requireAuth, api.updateCoverImage)
			users.GET("/c/:username", optionalAuth, api.channelProfile)
			users.GET("/history", requireAuth, api.watchHistory)
		}

		videos := v1.Group("/videos")
		{
			videos.GET("", api.listVideos)
			videos.POST("", requireAuth, api.publishVideo)
			videos.GET("/:videoId", optionalAuth, api.getVideo)
			videos.PATCH("/:videoId", requireAuth, api.updateVideo)
			videos.DELETE("/:videoId", requireAuth, api.deleteVideo)
			videos.PATCH("/:videoId/toggle-publish", requireAuth, api.togglePublishStatus)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("/video/:videoId", api.listVideoComments)
			comments.POST("/video/:videoId", requireAuth, api.addVideoComment)
			comments.GET("/tweet/:tweetId", api.listTweetComments)
			comments.POST("/tweet/:tweetId", requireAuth, api.addTweetComment)
			comments.PATCH("/:commentId", requireAuth, api.updateComment)
			comments.DELETE("/:commentId", requireAuth, api.deleteComment)
		}

		tweets := v1.Group("/tweets")
		{
			tweets.POST("", requireAuth, api.createTweet)
			tweets.GET("/user/:userId", api.listUserTweets)
			tweets.PATCH("/:tweetId", requireAuth, api.updateTweet)
			tweets.DELETE("/:tweetId", requireAuth, api.deleteTweet)
		}

		likes := v1.Group("/likes", requireAuth)
		{
			likes.POST("/toggle/v/:videoId", api.toggleVideoLike)
			likes.POST("/toggle/c/:commentId", api.toggleCommentLike)
			likes.POST("/toggle/t/:tweetId", api.toggleTweetLike)
			likes.GET("/videos", api.likedVideos)
			likes.GET("/tweets", api.likedTweets)
		}

		subscriptions := v1.Group("/subscriptions")
		{
			subscriptions.POST("/c/:channelId", requireAuth, api.toggleSubscription)
			subscriptions.GET("/c/:channelId", api.listChannelSubscribers)
			subscriptions.GET("/u/:subscriberId", api.listSubscribedChannels)
		}

		playlists := v1.Group("/playlists")
		{
			playlists.POST("", requireAuth, api.createPlaylist)
			playlists.GET("/p/:playlistId", api.getPlaylist)
			playlists.GET("/user/:userId", api.listUserPlaylists)
			playlists.PATCH("/p/:playlistId", requireAuth, api.updatePlaylist)
			playlists.DELETE("/p/:playlistId", requireAuth, api.deletePlaylist)
			playlists.POST("/p/:playlistId/videos/:videoId", requireAuth, api.addVideoToPlaylist)
			playlists.DELETE("/p/:playlistId/videos/:videoId", requireAuth, api.removeVideoFromPlaylist)
		}

		dashboard := v1.Group("/dashboard", requireAuth)
		{
			dashboard.GET("/stats", api.channelStats)
			dashboard.GET("/videos", api.channelVideos)
		}
	}

	return router
}
