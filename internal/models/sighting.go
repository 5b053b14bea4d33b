package models

import "time"

// Sighting represents a reported sighting of a registered cat (PostgreSQL).
// A sighting never mutates its parent report's last-seen field.
type Sighting struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	CatID        string     `json:"cat_id" gorm:"size:36;not null;index"`
	ReporterID   string     `json:"reporter_id" gorm:"size:36;index"`
	Location     string     `json:"location" gorm:"size:200;not null"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	SightingTime time.Time  `json:"sighting_time" gorm:"not null"`
	Notes        string     `json:"notes" gorm:"type:text"`
	ImageURL     string     `json:"image_url" gorm:"type:text"`
	IsVerified   bool       `json:"is_verified" gorm:"not null;default:false"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateSightingRequest defines the request body for reporting a sighting
type CreateSightingRequest struct {
	Location     string     `json:"location" validate:"required,max=200"`
	Latitude     *float64   `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64   `json:"longitude" validate:"omitempty,min=-180,max=180"`
	SightingTime *time.Time `json:"sighting_time"`
	Notes        string     `json:"notes" validate:"max=2000"`
	ImageURL     string     `json:"image_url" validate:"omitempty,url"`
}
