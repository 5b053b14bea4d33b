package models

import "time"

// Like represents a like on any target entity. The unique index enforces
// at-most-one like per (user, target kind, target id) at the storage level;
// the existence check in the toggle alone cannot survive two concurrent
// toggles from the same user.
type Like struct {
	ID         string     `json:"id" gorm:"primaryKey;size:36"`
	UserID     string     `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_like_user_target"`
	TargetType TargetKind `json:"target_type" gorm:"size:20;not null;uniqueIndex:idx_like_user_target"`
	TargetID   string     `json:"target_id" gorm:"size:36;not null;uniqueIndex:idx_like_user_target;index:idx_like_target"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	TargetID  string `json:"target_id"`
	IsLiked   bool   `json:"is_liked"`
	LikeCount int64  `json:"like_count"`
}
