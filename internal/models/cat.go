package models

import "time"

// Gender values for cat reports
const (
	GenderMale    = "MALE"
	GenderFemale  = "FEMALE"
	GenderUnknown = "UNKNOWN"
)

// Cat represents a stray cat report (PostgreSQL)
type Cat struct {
	ID           string              `json:"id" gorm:"primaryKey;size:36"`
	Name         string              `json:"name" gorm:"size:100;not null"`
	Description  string              `json:"description" gorm:"type:text"`
	EstimatedAge string              `json:"estimated_age" gorm:"size:50"`
	Gender       string              `json:"gender" gorm:"size:10;not null;default:UNKNOWN"`
	IsNeutered   bool                `json:"is_neutered" gorm:"not null;default:false"`
	Location     string              `json:"location" gorm:"size:200;not null"`
	Latitude     *float64            `json:"latitude"`
	Longitude    *float64            `json:"longitude"`
	LastSeenAt   *time.Time          `json:"last_seen_at"`
	IsActive     bool                `json:"is_active" gorm:"not null;default:true;index"`
	ReportedBy   string              `json:"reported_by" gorm:"size:36;index"`
	Images       []CatImage          `json:"images" gorm:"constraint:OnDelete:CASCADE"`
	Characteristics []CatCharacteristic `json:"characteristics" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time           `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CatImage is an image attached to a cat report, owned by the report.
type CatImage struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	CatID    string `json:"cat_id" gorm:"size:36;index;not null"`
	URL      string `json:"url" gorm:"type:text;not null"`
	Position int    `json:"position"`
}

// CatCharacteristic is a single characteristic tag of a cat report.
// A report never carries the same tag twice.
type CatCharacteristic struct {
	ID    string `json:"id" gorm:"primaryKey;size:36"`
	CatID string `json:"cat_id" gorm:"size:36;not null;uniqueIndex:idx_cat_characteristic"`
	Value string `json:"value" gorm:"size:50;not null;uniqueIndex:idx_cat_characteristic"`
}

// CreateCatRequest defines the request body for registering a cat report
type CreateCatRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=100"`
	Description     string   `json:"description" validate:"max=2000"`
	EstimatedAge    string   `json:"estimated_age" validate:"max=50"`
	Gender          string   `json:"gender" validate:"omitempty,oneof=MALE FEMALE UNKNOWN"`
	IsNeutered      *bool    `json:"is_neutered"`
	Location        string   `json:"location" validate:"required,max=200"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	ImageURLs       []string `json:"image_urls" validate:"omitempty,dive,url"`
	Characteristics []string `json:"characteristics" validate:"omitempty,dive,min=1,max=50"`
}

// UpdateCatRequest defines the request body for updating an existing report
type UpdateCatRequest struct {
	Name         string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	EstimatedAge *string  `json:"estimated_age,omitempty" validate:"omitempty,max=50"`
	Gender       string   `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE UNKNOWN"`
	IsNeutered   *bool    `json:"is_neutered,omitempty"`
	Location     string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

// CatFilter holds the recognized listing filters. Fields combine with
// logical AND; Characteristics matches any of the given tags.
type CatFilter struct {
	Name            string
	Location        string
	Gender          string
	IsNeutered      *bool
	IsActive        *bool // nil means active-only, the default
	Characteristics []string
	SortBy          string // only "created_at" is recognized
	SortDirection   string // "asc" or "desc"
}

// CatStats aggregates dashboard counts over cat reports.
type CatStats struct {
	ActiveCount   int64 `json:"active_count"`
	NewThisWeek   int64 `json:"new_this_week"`
	NeuteredCount int64 `json:"neutered_count"`
}
