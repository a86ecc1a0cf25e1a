package main

import (
	"os"

	"blog-api/pkg/cache"
	"blog-api/pkg/config"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"
	notificationApp "blog-api/services/notification/internal/app"

	"github.com/gin-gonic/gin"
)

const defaultPort = "8006"

// @title           Notification API
// @version         1.0
// @description     Like, comment and bookmark notifications for post authors.
// @host            localhost:8006
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if os.Getenv("SERVER_PORT") == "" {
		cfg.ServerPort = defaultPort
	}

	log := logger.New()
	if cfg.HasDefaultJWTSecret() {
		log.Error("JWT_SECRET is not set, refusing to start")
		panic("JWT_SECRET must be configured")
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}

	notificationApp.Run(cfg, log, db, redisClient, queueClient)
}
