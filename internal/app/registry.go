package app

import (
	"path/filepath"

	"go-nippo/internal/auth"
	"go-nippo/internal/employee"
	"go-nippo/internal/messaging/kafka"
	"go-nippo/internal/middleware"
	"go-nippo/internal/notification"
	"go-nippo/internal/rbac"
	"go-nippo/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer(
		filepath.Join("internal", "rbac", "model.conf"),
		filepath.Join("internal", "rbac", "policy.csv"),
	)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	employeeService := employee.NewService(gormDB, employeeRepo, rdb, logger)
	reportService := report.NewServiceWithOutbox(gormDB, reportRepo, outboxRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	reportHandler := report.NewHandlerWithRedis(reportService, rdb, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, enforcer, logger)
		report.RegisterRoutes(api, reportHandler, enforcer, rdb, logger)
		notification.RegisterRoutes(api, notificationHandler, enforcer, logger)
	}

	return nil
}
