package app

import (
	"github.com/NicBab/x-tech-app-server/internal/dlr"
	"github.com/NicBab/x-tech-app-server/internal/identity"
	"github.com/NicBab/x-tech-app-server/internal/messaging/kafka"
	"github.com/NicBab/x-tech-app-server/internal/middleware"
	"github.com/NicBab/x-tech-app-server/internal/product"
	"github.com/NicBab/x-tech-app-server/internal/rbac"
	"github.com/NicBab/x-tech-app-server/internal/timeentry"
	"github.com/NicBab/x-tech-app-server/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	// --- Repositories ---
	dlrRepo := dlr.NewRepository(gormDB)
	identityRepo := identity.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	productRepo := product.NewRepository(gormDB)
	timeEntryRepo := timeentry.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	dlrService := dlr.NewServiceWithOutbox(gormDB, dlrRepo, outboxRepo)
	identityService := identity.NewService(identityRepo)
	productService := product.NewService(productRepo, rdb)
	timeEntryService := timeentry.NewServiceWithOutbox(gormDB, timeEntryRepo, outboxRepo)
	userService := user.NewService(userRepo)

	// --- Handlers ---
	dlrHandler := dlr.NewHandler(dlrService)
	identityHandler := identity.NewHandler(identityService)
	productHandler := product.NewHandler(productService)
	timeEntryHandler := timeentry.NewHandlerWithRedis(timeEntryService, rdb)
	userHandler := user.NewHandler(userService)

	idempotency := noopMiddleware()
	if rdb != nil {
		idempotency = middleware.Idempotency(rdb)
	}

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		identity.RegisterRoutes(api, identityHandler)
		dlr.RegisterRoutes(api, dlrHandler)
		timeentry.RegisterRoutes(api, timeEntryHandler, idempotency)
		product.RegisterRoutes(api, productHandler, enforcer)
		user.RegisterRoutes(api, userHandler, enforcer)
	}

	return nil
}

func noopMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
