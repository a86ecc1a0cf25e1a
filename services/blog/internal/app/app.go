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
	"blog-api/pkg/s3"
	blogHTTP "blog-api/services/blog/internal/controller/http"
	"blog-api/services/blog/internal/repo/persistent"
	"blog-api/services/blog/internal/serializer"
	"blog-api/services/blog/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "blog-api/services/blog/docs" // Swagger docs
)

// NewRouter wires repositories, use cases and handlers. s3Client and
// queueClient may be nil: images are then served as stored paths and
// notifications are written directly.
func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, s3Client *s3.Client, queueClient *queue.Client) *gin.Engine {
	jwtService := jwt.NewServiceWithTTL(cfg.JWTSecret, cfg.JWTTokenTTL)

	var (
		media     serializer.MediaResolver
		store     usecase.MediaStore
		presigner blogHTTP.Presigner
		publisher usecase.EventPublisher
	)
	if s3Client != nil {
		media, store, presigner = s3Client, s3Client, s3Client
	}
	if queueClient != nil {
		publisher = queueClient
	}

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	categoryRepo := persistent.NewCategoryRepository(db)
	postRepo := persistent.NewPostRepository(db)
	engagementRepo := persistent.NewEngagementRepository(db)

	// Initialize use cases
	notifier := usecase.NewNotifier(publisher, engagementRepo, redisClient, log)
	userUseCase := usecase.NewUserUseCase(userRepo, jwtService, log)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, postRepo, redisClient, log)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, categoryRepo, redisClient, store, notifier, log)
	engagementUseCase := usecase.NewEngagementUseCase(engagementRepo, postRepo, notifier, log)

	// Initialize HTTP handlers
	userHandler := blogHTTP.NewUserHandler(userUseCase, media, log)
	categoryHandler := blogHTTP.NewCategoryHandler(categoryUseCase, media, log)
	postHandler := blogHTTP.NewPostHandler(postUseCase, media, log)
	engagementHandler := blogHTTP.NewEngagementHandler(engagementUseCase, media, log)
	mediaHandler := blogHTTP.NewMediaHandler(presigner, log)

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
	r.GET("/media/*path", mediaHandler.Serve)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// Public routes
	{
		api.POST("/users", userHandler.Register)
		api.POST("/auth/login", userHandler.Login)
		api.GET("/users/:id", userHandler.GetUser)
		api.GET("/users/:id/profile", userHandler.GetProfile)
		api.GET("/users/:id/posts", postHandler.UserPosts)

		api.GET("/categories", categoryHandler.ListCategories)
		api.GET("/categories/slug/:slug", categoryHandler.GetCategoryBySlug)
		api.GET("/categories/:id", categoryHandler.GetCategory)
		api.GET("/categories/:id/post-count", categoryHandler.PostCount)

		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/slug/:slug", postHandler.GetPostBySlug)
		api.GET("/posts/:id", postHandler.GetPost)
		api.POST("/posts/:id/view", postHandler.IncrementView)
		api.GET("/posts/:id/comments", engagementHandler.ListComments)
		api.POST("/posts/:id/comments", engagementHandler.AddComment)
	}

	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", userHandler.Me)
		protected.PUT("/me/profile", userHandler.UpdateProfile)
		protected.PATCH("/me/profile", userHandler.UpdateProfile)
		protected.PUT("/users/:id", userHandler.UpdateUser)
		protected.PATCH("/users/:id", userHandler.UpdateUser)
		protected.DELETE("/users/:id", userHandler.DeleteUser)

		protected.POST("/categories", categoryHandler.CreateCategory)
		protected.PUT("/categories/:id", categoryHandler.UpdateCategory)
		protected.PATCH("/categories/:id", categoryHandler.PatchCategory)
		protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		protected.POST("/posts", postHandler.CreatePost)
		protected.PUT("/posts/:id", postHandler.UpdatePost)
		protected.PATCH("/posts/:id", postHandler.UpdatePost)
		protected.DELETE("/posts/:id", postHandler.DeletePost)
		protected.POST("/posts/:id/like", postHandler.LikePost)
		protected.POST("/posts/:id/bookmark", engagementHandler.AddBookmark)

		protected.DELETE("/comments/:id", engagementHandler.DeleteComment)
		protected.GET("/bookmarks", engagementHandler.ListBookmarks)
		protected.DELETE("/bookmarks/:id", engagementHandler.DeleteBookmark)
	}

	return r
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, s3Client *s3.Client, queueClient *queue.Client) {
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(cfg, log, db, redisClient, s3Client, queueClient),
	}

	go func() {
		log.Info("Blog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Blog service exited")
}
