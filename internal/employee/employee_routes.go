package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "employee", "read"),
			handler.GetAll,
		)

		// Options are readable by everyone who can write reports.
		employees.GET("/options",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "report", "read"),
			handler.GetOptions,
		)

		employees.GET("/:code",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(enforcer, "employee", "read"),
			handler.GetByCode,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(enforcer, "employee", "create"),
			handler.Create,
		)

		employees.PUT("/:code",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(enforcer, "employee", "update"),
			handler.Update,
		)

		employees.DELETE("/:code",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(enforcer, "employee", "delete"),
			handler.Delete,
		)
	}
}
