package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post types for community posts
const (
	PostTypeSighting = "sighting"
	PostTypeHelp     = "help"
	PostTypeUpdate   = "update"
)

// Post represents a community post stored in MongoDB. Likes and comments
// on posts live in PostgreSQL keyed by the post's hex id, which is why the
// polymorphic target id is a string rather than a UUID column.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  string             `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	CatName   string             `json:"cat_name,omitempty" bson:"cat_name,omitempty"`
	Location  string             `json:"location,omitempty" bson:"location,omitempty"`
	Type      string             `json:"type" bson:"type"`
	ImageURLs []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a community post
type CreatePostRequest struct {
	Content   string   `json:"content" validate:"required,min=1,max=2000"`
	CatName   string   `json:"cat_name,omitempty" validate:"omitempty,max=100"`
	Location  string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Type      string   `json:"type" validate:"omitempty,oneof=sighting help update"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
