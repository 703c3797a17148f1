package auth

import (
	"go-nippo/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
		authGroup.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
