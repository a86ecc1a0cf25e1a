package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-api/pkg/config"
	"blog-api/pkg/jwt"
	"blog-api/pkg/logger"
	"blog-api/pkg/middleware"
	"blog-api/pkg/queue"
	notificationHTTP "blog-api/services/notification/internal/controller/http"
	"blog-api/services/notification/internal/repo/persistent"
	"blog-api/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "blog-api/services/notification/docs" // Swagger docs
)

// NewRouter builds the notification API around an existing use case.
func NewRouter(cfg *config.Config, log *logger.Logger, notificationUseCase usecase.NotificationUseCase, redisClient *redis.Client) *gin.Engine {
	jwtService := jwt.NewServiceWithTTL(cfg.JWTSecret, cfg.JWTTokenTTL)

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, log, jwtService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// WebSocket endpoint - authenticates with the token query parameter
	api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	if redisClient != nil {
		protected.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow))
	}
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unseen-count", notificationHandler.UnseenCount)
		protected.POST("/notifications/seen", notificationHandler.MarkAllSeen)
		protected.POST("/notifications/:id/seen", notificationHandler.MarkSeen)
	}

	return r
}

// StartConsumer feeds engagement events from the queue into the use case.
func StartConsumer(queueClient *queue.Client, notificationUseCase usecase.NotificationUseCase, log *logger.Logger) error {
	log.Info("Starting notification queue consumer...")
	return queueClient.ConsumeEngagement(func(event queue.EngagementEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := notificationUseCase.HandleEngagement(ctx, event)
		return err
	})
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	// Initialize Repository
	notificationRepo := persistent.NewNotificationRepository(db)

	// Initialize UseCase
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, redisClient, log)

	if err := StartConsumer(queueClient, notificationUseCase, log); err != nil {
		log.Error("Error starting notification queue consumer: %v", err)
		panic(err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(cfg, log, notificationUseCase, redisClient),
	}

	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Closing the channel ends the consumer goroutine
	queueClient.Close()

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	log.Info("Notification service exited")
}
