package models

import "time"

// Notification types
const (
	NotificationLike             = "LIKE"
	NotificationComment          = "COMMENT"
	NotificationNewSighting      = "NEW_SIGHTING"
	NotificationSightingVerified = "SIGHTING_VERIFIED"
)

// Notification represents a user notification (PostgreSQL). Notifications
// are only ever created by internal workflows as a side effect of a
// triggering action, never directly by a client.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;index"`
	Type      string    `json:"type" gorm:"size:30;not null;index"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	RelatedID *string   `json:"related_id,omitempty" gorm:"size:36;index"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
