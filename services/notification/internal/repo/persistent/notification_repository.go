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
	"learnhub/services/notification/internal/store"
)

// NotificationRepository implements store.NotificationStore on a MongoDB
// collection.
type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{collection: db.Collection("notifications")}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, entity.Invalid("invalid notification id")
	}
	return oid, nil
}

func (r *NotificationRepository) Find(ctx context.Context, filter store.Filter, sort store.Sort) ([]entity.Notification, error) {
	opts := options.Find().SetSort(sortToBSON(sort))
	cursor, err := r.collection.Find(ctx, filterToBSON(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var models []model.NotificationModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	notifications := make([]entity.Notification, len(models))
	for i := range models {
		notifications[i] = toNotificationEntity(&models[i])
	}
	return notifications, nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var m model.NotificationModel
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find notification %s: %w", id, err)
	}

	n := toNotificationEntity(&m)
	return &n, nil
}

func (r *NotificationRepository) Insert(ctx context.Context, n entity.Notification) (entity.Notification, error) {
	m := toNotificationModel(n)
	m.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return entity.Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}

	return toNotificationEntity(&m), nil
}

func (r *NotificationRepository) UpdateByID(ctx context.Context, id string, patch store.Patch) (*entity.Notification, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m model.NotificationModel
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, patchToBSON(patch), opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update notification %s: %w", id, err)
	}

	n := toNotificationEntity(&m)
	return &n, nil
}

func (r *NotificationRepository) UpdateMany(ctx context.Context, filter store.Filter, patch store.Patch) (int64, error) {
	result, err := r.collection.UpdateMany(ctx, filterToBSON(filter), patchToBSON(patch))
	if err != nil {
		return 0, fmt.Errorf("failed to update notifications: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *NotificationRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteMany(ctx context.Context, filter store.Filter) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, filterToBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return result.DeletedCount, nil
}
