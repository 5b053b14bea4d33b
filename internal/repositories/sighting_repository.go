package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meowtown/backend/internal/models"
)

// SightingRepository defines the interface for sighting data operations
type SightingRepository interface {
	CreateSighting(ctx context.Context, sighting *models.Sighting) error
	GetSightingByID(ctx context.Context, id string) (*models.Sighting, error)
	ListByCatID(ctx context.Context, catID string, page, size int) ([]models.Sighting, int64, error)
	VerifySighting(ctx context.Context, id string) (*models.Sighting, error)
	DeleteSighting(ctx context.Context, id string) error
}

// PostgresSightingRepository implements SightingRepository for PostgreSQL
type PostgresSightingRepository struct {
	db *gorm.DB
}

// NewPostgresSightingRepository creates a new PostgresSightingRepository
func NewPostgresSightingRepository(db *gorm.DB) *PostgresSightingRepository {
	return &PostgresSightingRepository{db: db}
}

// CreateSighting inserts a sighting. The sighting time defaults to now;
// the parent report's last-seen field is never touched here.
func (r *PostgresSightingRepository) CreateSighting(ctx context.Context, sighting *models.Sighting) error {
	if sighting.ID == "" {
		sighting.ID = uuid.NewString()
	}
	if sighting.SightingTime.IsZero() {
		sighting.SightingTime = time.Now()
	}
	return r.db.WithContext(ctx).Create(sighting).Error
}

// GetSightingByID retrieves a sighting by id.
func (r *PostgresSightingRepository) GetSightingByID(ctx context.Context, id string) (*models.Sighting, error) {
	var sighting models.Sighting
	if err := r.db.WithContext(ctx).First(&sighting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sighting, nil
}

// ListByCatID returns a page of sightings for a cat, most recent sighting
// time first, plus the total count.
func (r *PostgresSightingRepository) ListByCatID(ctx context.Context, catID string, page, size int) ([]models.Sighting, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Sighting{}).Where("cat_id = ?", catID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sightings []models.Sighting
	err := q.Order("sighting_time DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&sightings).Error
	return sightings, total, err
}

// VerifySighting marks a sighting as verified and returns the updated row.
func (r *PostgresSightingRepository) VerifySighting(ctx context.Context, id string) (*models.Sighting, error) {
	sighting, err := r.GetSightingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sighting.IsVerified {
		return sighting, nil
	}
	if err := r.db.WithContext(ctx).Model(sighting).Update("is_verified", true).Error; err != nil {
		return nil, err
	}
	sighting.IsVerified = true
	return sighting, nil
}

// DeleteSighting removes a sighting together with its likes, comments and
// notifications in one transaction.
func (r *PostgresSightingRepository) DeleteSighting(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Sighting{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		target := models.TargetRef{Kind: models.TargetSighting, ID: id}
		likeRepo := NewPostgresLikeRepository(r.db)
		if err := likeRepo.DeleteAllForTarget(ctx, tx, target); err != nil {
			return err
		}
		commentRepo := NewPostgresCommentRepository(r.db)
		if err := commentRepo.DeleteAllForTarget(ctx, tx, target); err != nil {
			return err
		}
		return tx.Where("related_id = ?", id).Delete(&models.Notification{}).Error
	})
}
