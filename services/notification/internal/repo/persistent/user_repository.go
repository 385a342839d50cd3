package persistent

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnhub/services/notification/internal/entity"
	"learnhub/services/notification/internal/model"
)

// UserRepository resolves user ids into display summaries for the sender
// embedding on listings.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// FindSummary returns (nil, nil) when the user does not exist; a missing
// sender is a presentation gap, not an error.
func (r *UserRepository) FindSummary(ctx context.Context, id string) (*entity.UserSummary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOne().SetProjection(bson.M{"name": 1, "role": 1})
	var m model.UserModel
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}

	summary := toUserSummary(&m)
	return &summary, nil
}
