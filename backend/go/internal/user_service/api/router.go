package api

import (
	"LoveAI/backend/go/internal/auth"

	"github.com/gin-gonic/gin"
)

// SetupRouter 配置和返回一个 Gin 引擎实例。
func SetupRouter(h *Handler, jwtSecret string) *gin.Engine {
	// 使用默认中间件 (logger, recovery) 创建一个 Gin 引擎。
	r := gin.Default()

	// 创建认证中间件实例
	authMiddleware := auth.Middleware(jwtSecret)

	// 使用 v1 版本对 API 进行分组
	apiV1 := r.Group("/api/v1")
	{
		// 用户认证路由组
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", h.RegisterEmail)
			authGroup.POST("/login", h.LoginEmail)
		}

		// 需要登录的用户信息路由
		users := apiV1.Group("/users")
		users.Use(authMiddleware)
		{
			users.GET("/me", h.Me)
		}
	}

	return r
}
