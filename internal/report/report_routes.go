package report

import (
	"go-nippo/internal/middleware"
	"go-nippo/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "report", "read"),
			handler.List,
		)

		reports.GET("/check-date",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "report", "read"),
			handler.CheckDate,
		)

		reports.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "report", "read"),
			handler.GetByID,
		)

		reports.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			rbac.Authorize(enforcer, "report", "create"),
			handler.Create,
		)

		reports.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(enforcer, "report", "update"),
			handler.Update,
		)

		reports.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(enforcer, "report", "delete"),
			handler.Delete,
		)
	}
}
