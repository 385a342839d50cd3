package main

import (
	"learnhub/pkg/cache"
	"learnhub/pkg/config"
	"learnhub/pkg/database"
	"learnhub/pkg/logger"
	notificationApp "learnhub/services/notification/internal/app"

	"github.com/gin-gonic/gin"
)

// @title        LearnHub Notification Service API
// @version      1.0
// @description  Notifications resource of the LearnHub learning platform.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithFile("notification-service", cfg.LogFile)

	mongoClient, err := database.NewMongoClient(cfg)
	if err != nil {
		log.Error("Failed to connect to MongoDB: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to Redis: %v", err)
		panic(err)
	}

	notificationApp.Run(cfg, log, mongoClient, redisClient)
}
