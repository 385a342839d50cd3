// Package store defines the narrow persistence contract the notification
// service depends on, together with the typed filter and patch values passed
// to it. Keeping the query vocabulary here means neither the rules nor the
// use cases ever see store-specific syntax.
package store

import (
	"context"

	"learnhub/services/notification/internal/entity"
)

// Field names a queryable or patchable notification attribute.
type Field string

const (
	FieldRecipient         Field = "recipient"
	FieldSender            Field = "sender"
	FieldTitle             Field = "title"
	FieldMessage           Field = "message"
	FieldType              Field = "type"
	FieldRelatedEntity     Field = "related_entity"
	FieldRelatedEntityType Field = "related_entity_type"
	FieldIsRead            Field = "is_read"
	FieldReadAt            Field = "read_at"
	FieldCreatedAt         Field = "created_at"
)

// Operator of a filter condition. Equality is all the service needs.
type Operator string

const OpEq Operator = "eq"

// Condition is a single field comparison.
type Condition struct {
	Field    Field
	Operator Operator
	Value    interface{}
}

// Filter is a conjunction of conditions.
type Filter []Condition

// Eq builds an equality condition.
func Eq(field Field, value interface{}) Condition {
	return Condition{Field: field, Operator: OpEq, Value: value}
}

// Change assigns a new value to a field.
type Change struct {
	Field Field
	Value interface{}
}

// Patch is a set of field assignments applied atomically to matching
// documents.
type Patch []Change

// Set builds a field assignment.
func Set(field Field, value interface{}) Change {
	return Change{Field: field, Value: value}
}

// Sort orders results by a single field.
type Sort struct {
	Field      Field
	Descending bool
}

// NotificationStore is the document-collection contract. Implementations must
// apply UpdateMany and DeleteMany atomically per matching filter and return
// entity.ErrNotFound from the by-id operations when nothing matches.
type NotificationStore interface {
	Find(ctx context.Context, filter Filter, sort Sort) ([]entity.Notification, error)
	FindByID(ctx context.Context, id string) (*entity.Notification, error)
	Insert(ctx context.Context, n entity.Notification) (entity.Notification, error)
	UpdateByID(ctx context.Context, id string, patch Patch) (*entity.Notification, error)
	UpdateMany(ctx context.Context, filter Filter, patch Patch) (int64, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}

// UserStore resolves actor ids into embeddable summaries for presentation.
type UserStore interface {
	FindSummary(ctx context.Context, id string) (*entity.UserSummary, error)
}
