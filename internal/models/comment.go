package models

import "time"

// Comment represents a comment on any target entity. A reply carries a
// ParentID pointing at another comment with the same outer target.
type Comment struct {
	ID         string     `json:"id" gorm:"primaryKey;size:36"`
	AuthorID   string     `json:"author_id" gorm:"size:36;not null;index"`
	TargetType TargetKind `json:"target_type" gorm:"size:20;not null;index:idx_comment_target"`
	TargetID   string     `json:"target_id" gorm:"size:36;not null;index:idx_comment_target"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	ParentID   *string    `json:"parent_id" gorm:"size:36;index"`
	Replies    []Comment  `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt  time.Time  `json:"created_at" gorm:"index"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,min=1,max=1000"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}
