package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User roles
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
)

// User is a thin profile row linked to an externally issued identity.
// The auth provider (JWT or Firebase) is the source of the identity; this
// row only exists so social rows have something to reference.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ExternalUID string    `json:"external_uid,omitempty" gorm:"size:128;uniqueIndex"`
	Username    string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	DisplayName string    `json:"display_name" gorm:"size:100"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex"`
	AvatarURL   string    `json:"avatar_url,omitempty" gorm:"type:text"`
	Role        string    `json:"role" gorm:"size:20;not null;default:USER"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// UserCompact is the embedded author/actor view returned inside other payloads.
type UserCompact struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ToCompact returns the compact view of the user.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

// RegisterUserRequest defines the request body for linking an authenticated
// identity to a profile row.
type RegisterUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=50"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	Email       string `json:"email" validate:"required,email"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UpdateUserRequest defines the request body for updating a profile
type UpdateUserRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
