// Package rules holds the access and lifecycle decisions for notifications.
// Every function is pure: it takes the acting identity, the operation input
// and (where relevant) the current entity snapshot, and either returns the
// resulting entity state or a Forbidden/NotFound/Validation error. Nothing in
// this package touches the store or the transport.
package rules

import (
	"time"

	"learnhub/services/notification/internal/entity"
)

// Operation names the mutating operations that consult the ownership-bypass
// table.
type Operation string

const (
	OpUpdate   Operation = "update"
	OpMarkRead Operation = "mark_read"
	OpDelete   Operation = "delete"
)

// bypassOwnership declares, per operation, whether privilege overrides the
// ownership check. MarkRead is deliberately false: only the recipient may
// mark a notification read, whatever the actor's role.
var bypassOwnership = map[Operation]bool{
	OpUpdate:   true,
	OpDelete:   true,
	OpMarkRead: false,
}

// IsPrivileged reports whether the role is exempt from certain ownership
// checks.
func IsPrivileged(role entity.Role) bool {
	return role == entity.RoleTeacher || role == entity.RoleAdmin
}

// CanBypassOwnership reports whether an actor with the given role may perform
// op on a notification it does not own.
func CanBypassOwnership(op Operation, role entity.Role) bool {
	return IsPrivileged(role) && bypassOwnership[op]
}

// CreateInput is the caller-supplied payload for Create. Recipient and Sender
// default to the actor when absent.
type CreateInput struct {
	Recipient         string
	Sender            string
	Title             string
	Message           string
	Type              entity.NotificationType
	RelatedEntity     string
	RelatedEntityType string
}

// UpdateInput is the caller-supplied payload for Update. Nil means "leave the
// field alone". Recipient and Sender may arrive on the wire but are always
// discarded: ownership cannot be reassigned through update, not even by an
// admin.
type UpdateInput struct {
	Title             *string
	Message           *string
	Type              *entity.NotificationType
	RelatedEntity     *string
	RelatedEntityType *string
	Recipient         *string
	Sender            *string
}

// PrepareCreate decides whether actor may create the notification described
// by in, and returns the initial entity state. A missing recipient defaults
// to the actor (self-notify); creating for someone else requires privilege.
func PrepareCreate(actor entity.Actor, in CreateInput, now time.Time) (entity.Notification, error) {
	recipient := in.Recipient
	if recipient == "" {
		recipient = actor.ID
	}

	if recipient != actor.ID && !IsPrivileged(actor.Role) {
		return entity.Notification{}, entity.Forbidden("cross-user creation requires privilege")
	}

	sender := in.Sender
	if sender == "" {
		sender = actor.ID
	}

	if in.Title == "" {
		return entity.Notification{}, entity.Invalid("title is required")
	}
	if in.Message == "" {
		return entity.Notification{}, entity.Invalid("message is required")
	}

	notificationType := in.Type
	if notificationType == "" {
		notificationType = entity.TypeInfo
	}
	if !entity.ValidNotificationType(notificationType) {
		return entity.Notification{}, entity.Invalid("unknown notification type")
	}

	return entity.Notification{
		Sender:            sender,
		Recipient:         recipient,
		Title:             in.Title,
		Message:           in.Message,
		Type:              notificationType,
		RelatedEntity:     in.RelatedEntity,
		RelatedEntityType: in.RelatedEntityType,
		IsRead:            false,
		ReadAt:            nil,
		CreatedAt:         now,
	}, nil
}

// ApplyUpdate decides whether actor may update existing and merges the
// allowed fields of in into it. Only the original sender or a privileged
// actor may update; recipient and sender are never touched.
func ApplyUpdate(actor entity.Actor, existing entity.Notification, in UpdateInput) (entity.Notification, error) {
	if actor.ID != existing.Sender && !CanBypassOwnership(OpUpdate, actor.Role) {
		return entity.Notification{}, entity.Forbidden("not sender or privileged")
	}

	updated := existing

	if in.Title != nil {
		if *in.Title == "" {
			return entity.Notification{}, entity.Invalid("title must not be empty")
		}
		updated.Title = *in.Title
	}
	if in.Message != nil {
		if *in.Message == "" {
			return entity.Notification{}, entity.Invalid("message must not be empty")
		}
		updated.Message = *in.Message
	}
	if in.Type != nil {
		if !entity.ValidNotificationType(*in.Type) {
			return entity.Notification{}, entity.Invalid("unknown notification type")
		}
		updated.Type = *in.Type
	}
	if in.RelatedEntity != nil {
		updated.RelatedEntity = *in.RelatedEntity
	}
	if in.RelatedEntityType != nil {
		updated.RelatedEntityType = *in.RelatedEntityType
	}

	// in.Recipient and in.Sender are intentionally ignored.

	return updated, nil
}

// MarkRead decides whether actor may mark existing as read and returns the
// read state. Only the recipient qualifies; privilege does not override this.
// Calling it on an already-read notification re-stamps ReadAt.
func MarkRead(actor entity.Actor, existing entity.Notification, now time.Time) (entity.Notification, error) {
	if actor.ID != existing.Recipient {
		return entity.Notification{}, entity.Forbidden("only recipient may mark read")
	}

	updated := existing
	updated.IsRead = true
	readAt := now
	updated.ReadAt = &readAt
	return updated, nil
}

// CanDelete decides whether actor may delete existing: the recipient, the
// sender (when one is recorded) or any privileged actor may.
func CanDelete(actor entity.Actor, existing entity.Notification) error {
	if actor.ID == existing.Recipient {
		return nil
	}
	if CanBypassOwnership(OpDelete, actor.Role) {
		return nil
	}
	if existing.Sender != "" && actor.ID == existing.Sender {
		return nil
	}
	return entity.Forbidden("not authorized to delete")
}
