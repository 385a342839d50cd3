package main

import (
	"context"
	"log"
	"time"

	"learnhub/pkg/config"
	"learnhub/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Creates the indexes the notification service queries against.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := database.NewMongoClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)

	notificationIndexes := []mongo.IndexModel{
		{
			// Listing: recipient's notifications, newest first
			Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			// Mark-all-as-read: recipient's unread notifications
			Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "is_read", Value: 1}},
		},
	}

	names, err := db.Collection("notifications").Indexes().CreateMany(ctx, notificationIndexes)
	if err != nil {
		log.Fatalf("Failed to create notification indexes: %v", err)
	}
	log.Printf("Created notification indexes: %v", names)

	log.Println("Migration complete")
}
