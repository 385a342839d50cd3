package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationModel is the MongoDB document shape for a notification.
type NotificationModel struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Sender            string             `bson:"sender,omitempty"`
	Recipient         string             `bson:"recipient"`
	Title             string             `bson:"title"`
	Message           string             `bson:"message"`
	Type              string             `bson:"type"`
	RelatedEntity     string             `bson:"related_entity,omitempty"`
	RelatedEntityType string             `bson:"related_entity_type,omitempty"`
	IsRead            bool               `bson:"is_read"`
	ReadAt            *time.Time         `bson:"read_at,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
}
