package notification

import (
	"go-nippo/internal/middleware"
	"go-nippo/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	logger *zap.Logger,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	notifications.Use(middleware.ContextLogger(logger))
	{
		notifications.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "notification", "read"),
			handler.GetUnread,
		)

		notifications.PUT("/:id/read",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "notification", "update"),
			handler.MarkRead,
		)
	}
}
