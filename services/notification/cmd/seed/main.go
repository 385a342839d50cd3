package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnhub/pkg/config"
	"learnhub/pkg/database"
	"learnhub/pkg/jwt"
	"learnhub/pkg/logger"
	"learnhub/services/notification/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Seeds demo users and notifications, and prints a bearer token per user so
// the API can be exercised by hand.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	client, err := database.NewMongoClient(cfg)
	if err != nil {
		log.Error("Failed to connect to MongoDB: %v", err)
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	jwtService := jwt.NewService(cfg.JWTSecret)

	if err := seedDatabase(ctx, db, jwtService, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, db *mongo.Database, jwtService *jwt.Service, log *logger.Logger) error {
	users := db.Collection("users")
	notifications := db.Collection("notifications")

	demoUsers := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Alice Martin", "alice@learnhub.test", "password123", "student"},
		{"Bob Chen", "bob@learnhub.test", "password123", "student"},
		{"Ms. Harris", "harris@learnhub.test", "password123", "teacher"},
		{"Site Admin", "admin@learnhub.test", "password123", "admin"},
	}

	userIDs := make(map[string]primitive.ObjectID, len(demoUsers))

	for _, u := range demoUsers {
		var existing model.UserModel
		err := users.FindOne(ctx, bson.M{"email": u.email}).Decode(&existing)
		if err == nil {
			log.Info("User %s already exists, skipping", u.email)
			userIDs[u.role+"/"+u.name] = existing.ID
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.email, err)
		}

		doc := model.UserModel{
			ID:        primitive.NewObjectID(),
			Name:      u.name,
			Email:     u.email,
			Password:  string(hashed),
			Role:      u.role,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := users.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.email, err)
		}
		userIDs[u.role+"/"+u.name] = doc.ID
		log.Info("Created user %s (%s)", u.name, u.role)
	}

	alice := userIDs["student/Alice Martin"]
	teacher := userIDs["teacher/Ms. Harris"]

	demoNotifications := []model.NotificationModel{
		{
			ID:                primitive.NewObjectID(),
			Sender:            teacher.Hex(),
			Recipient:         alice.Hex(),
			Title:             "Grade posted",
			Message:           "Your essay has been graded",
			Type:              "success",
			RelatedEntity:     primitive.NewObjectID().Hex(),
			RelatedEntityType: "assignment",
			CreatedAt:         time.Now().UTC().Add(-2 * time.Hour),
		},
		{
			ID:        primitive.NewObjectID(),
			Recipient: alice.Hex(), // system-generated, no sender
			Title:     "Welcome to LearnHub",
			Message:   "Complete your profile to get started",
			Type:      "info",
			CreatedAt: time.Now().UTC().Add(-24 * time.Hour),
		},
	}

	for _, n := range demoNotifications {
		if _, err := notifications.InsertOne(ctx, n); err != nil {
			return fmt.Errorf("failed to insert notification %q: %w", n.Title, err)
		}
	}
	log.Info("Created %d notifications for %s", len(demoNotifications), alice.Hex())

	// Print a usable token per seeded user
	for key, id := range userIDs {
		role := key[:strings.IndexByte(key, '/')]
		token, err := jwtService.GenerateToken(id.Hex(), role)
		if err != nil {
			return fmt.Errorf("failed to generate token for %s: %w", key, err)
		}
		log.Info("Token for %s: %s", key, token)
	}

	return nil
}
