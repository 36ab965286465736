package api

import (
	"LoveAI/backend/go/internal/auth"
	"LoveAI/backend/go/pkg/ratelimiter"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all the routes for the advisor service. limiter
// may be nil when rate limiting is disabled.
func RegisterRoutes(router *gin.Engine, api *API, jwtSecret string, limiter ratelimiter.RateLimiter) {
	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(jwtSecret))

	chat := v1.Group("/chat")
	{
		// Only the LLM-backed routes are rate limited.
		chat.POST("", RateLimit(limiter), api.ChatHandler)
		chat.POST("/stream", RateLimit(limiter), api.ChatStreamHandler)

		chat.GET("/history", api.HistoryHandler)
		chat.DELETE("/history", api.ClearHistoryHandler)
	}
}
