package models

import "time"

// SavedCat is a user's bookmark on a cat report. A user saves a report at
// most once.
type SavedCat struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_user_cat_save"`
	CatID     string    `json:"cat_id" gorm:"size:36;not null;uniqueIndex:idx_user_cat_save"`
	CreatedAt time.Time `json:"created_at"`
}
