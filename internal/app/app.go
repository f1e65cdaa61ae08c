package app

import (
	"os"

	"github.com/NicBab/x-tech-app-server/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module's
// routes on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// The API degrades without redis (no idempotency replay, no
		// catalog cache) but still serves requests.
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("redis connection established")
	}

	return registerModules(router, gormDB, redisClient)
}
