package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub/pkg/config"
	"learnhub/pkg/jwt"
	"learnhub/pkg/logger"
	"learnhub/pkg/middleware"
	notificationHTTP "learnhub/services/notification/internal/controller/http"
	"learnhub/services/notification/internal/repo/persistent"
	"learnhub/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "learnhub/services/notification/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, mongoClient *mongo.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	db := mongoClient.Database(cfg.MongoDatabase)

	// Initialize repositories
	notificationRepo := persistent.NewNotificationRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// Initialize UseCase
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, log)

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	// All notification routes require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowS)*time.Second))
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.POST("/notifications", notificationHandler.CreateNotification)
		protected.DELETE("/notifications", notificationHandler.ClearNotifications)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllNotificationsAsRead)
		protected.PUT("/notifications/:id", notificationHandler.UpdateNotification)
		protected.DELETE("/notifications/:id", notificationHandler.DeleteNotification)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkNotificationAsRead)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
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

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Close MongoDB connection
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("Error closing MongoDB: %v", err)
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Notification service exited")
}
