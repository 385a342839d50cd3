package entity

import "time"

// Role of an authenticated actor. Teachers and admins are privileged.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Actor is the authenticated identity performing an operation. Handlers build
// it from the request context and pass it explicitly; there is no ambient
// actor state.
type Actor struct {
	ID   string
	Role Role
}

// NotificationType is the severity/category of a notification.
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeSuccess NotificationType = "success"
	TypeWarning NotificationType = "warning"
	TypeError   NotificationType = "error"
)

// ValidNotificationType reports whether t is one of the known types.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeError:
		return true
	}
	return false
}

// Notification is a message addressed to exactly one recipient. An empty
// Sender means the notification was generated by the system. ReadAt is
// non-nil if and only if IsRead is true.
type Notification struct {
	ID                string
	Sender            string
	Recipient         string
	Title             string
	Message           string
	Type              NotificationType
	RelatedEntity     string
	RelatedEntityType string
	IsRead            bool
	ReadAt            *time.Time
	CreatedAt         time.Time
}

// UserSummary is the embedded sender representation attached to listings.
type UserSummary struct {
	ID   string
	Name string
	Role Role
}
