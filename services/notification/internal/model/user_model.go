package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserModel is the MongoDB document shape for a platform user. Only the
// fields the notification service reads (plus those the seed tooling writes)
// are mapped.
type UserModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password,omitempty"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"created_at"`
}
