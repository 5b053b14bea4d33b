package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meowtown/backend/internal/models"
)

// SavedCatRepository defines the interface for cat bookmark operations
type SavedCatRepository interface {
	SaveCat(ctx context.Context, userID, catID string) error
	UnsaveCat(ctx context.Context, userID, catID string) error
	IsCatSaved(ctx context.Context, userID, catID string) (bool, error)
	ListSavedCats(ctx context.Context, userID string, page, size int) ([]models.Cat, int64, error)
	SavedCatIDs(ctx context.Context, userID string, catIDs []string) (map[string]bool, error)
}

// PostgresSavedCatRepository implements SavedCatRepository for PostgreSQL
type PostgresSavedCatRepository struct {
	db *gorm.DB
}

// NewPostgresSavedCatRepository creates a new PostgresSavedCatRepository
func NewPostgresSavedCatRepository(db *gorm.DB) *PostgresSavedCatRepository {
	return &PostgresSavedCatRepository{db: db}
}

// SaveCat bookmarks a report for the user. Saving twice is ErrDuplicate.
func (r *PostgresSavedCatRepository) SaveCat(ctx context.Context, userID, catID string) error {
	saved, err := r.IsCatSaved(ctx, userID, catID)
	if err != nil {
		return err
	}
	if saved {
		return ErrDuplicate
	}
	return r.db.WithContext(ctx).Create(&models.SavedCat{
		ID:     uuid.NewString(),
		UserID: userID,
		CatID:  catID,
	}).Error
}

// UnsaveCat removes the bookmark; ErrNotFound when there is none.
func (r *PostgresSavedCatRepository) UnsaveCat(ctx context.Context, userID, catID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND cat_id = ?", userID, catID).
		Delete(&models.SavedCat{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsCatSaved checks whether the user has bookmarked the report.
func (r *PostgresSavedCatRepository) IsCatSaved(ctx context.Context, userID, catID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedCat{}).
		Where("user_id = ? AND cat_id = ?", userID, catID).
		Count(&count).Error
	return count > 0, err
}

// ListSavedCats returns a page of the user's bookmarked reports, most
// recently saved first. Deactivated reports drop out of the listing but the
// bookmark row stays, so a reactivated report reappears.
func (r *PostgresSavedCatRepository) ListSavedCats(ctx context.Context, userID string, page, size int) ([]models.Cat, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Cat{}).
		Joins("JOIN saved_cats ON saved_cats.cat_id = cats.id").
		Where("saved_cats.user_id = ? AND cats.is_active = ?", userID, true)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cats []models.Cat
	err := base.Order("saved_cats.created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Characteristics").
		Find(&cats).Error
	return cats, total, err
}

// SavedCatIDs reports which of the given report ids the user has bookmarked,
// in one query.
func (r *PostgresSavedCatRepository) SavedCatIDs(ctx context.Context, userID string, catIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(catIDs))
	if len(catIDs) == 0 {
		return result, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).Model(&models.SavedCat{}).
		Where("user_id = ? AND cat_id IN ?", userID, catIDs).
		Pluck("cat_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
