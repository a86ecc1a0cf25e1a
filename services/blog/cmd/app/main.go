package main

import (
	"blog-api/pkg/cache"
	"blog-api/pkg/config"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
	"blog-api/pkg/queue"
	"blog-api/pkg/s3"
	blogApp "blog-api/services/blog/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Blog API
// @version         1.0
// @description     Users, profiles, categories, posts, comments and bookmarks.
// @host            localhost:8080
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

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to initialize S3 client: %v", err)
		panic(err)
	}
	if err := s3Client.EnsureBucket(); err != nil {
		log.Warn("Media bucket unavailable: %v", err)
	}

	// Without RabbitMQ, notifications are written directly.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ, notifications will be stored directly: %v", err)
		queueClient = nil
	}

	blogApp.Run(cfg, log, db, redisClient, s3Client, queueClient)
}
