package repositories

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/pkg/geo"
)

// NearbyCat is a cat report annotated with its distance from a search center.
type NearbyCat struct {
	models.Cat
	DistanceMeters float64 `json:"distance_meters"`
}

// CatRepository defines the interface for cat report data operations
type CatRepository interface {
	CreateCat(ctx context.Context, cat *models.Cat) error
	GetCatByID(ctx context.Context, id string) (*models.Cat, error)
	ListCats(ctx context.Context, filter models.CatFilter, page, size int) ([]models.Cat, int64, error)
	FindNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]NearbyCat, error)
	SearchByName(ctx context.Context, query string, page, size int) ([]models.Cat, int64, error)
	UpdateCat(ctx context.Context, cat *models.Cat) error
	DeactivateCat(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
	CountNewSince(ctx context.Context, since time.Time) (int64, error)
	CountNeutered(ctx context.Context) (int64, error)
}

// PostgresCatRepository implements CatRepository for PostgreSQL
type PostgresCatRepository struct {
	db *gorm.DB
}

// NewPostgresCatRepository creates a new PostgresCatRepository
func NewPostgresCatRepository(db *gorm.DB) *PostgresCatRepository {
	return &PostgresCatRepository{db: db}
}

// CreateCat assigns identity and defaults, deduplicates characteristic tags
// and persists the report together with its owned images and characteristics.
func (r *PostgresCatRepository) CreateCat(ctx context.Context, cat *models.Cat) error {
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	if cat.Gender == "" {
		cat.Gender = models.GenderUnknown
	}
	cat.IsActive = true

	seen := make(map[string]bool, len(cat.Characteristics))
	deduped := cat.Characteristics[:0]
	for i := range cat.Characteristics {
		ch := cat.Characteristics[i]
		if seen[ch.Value] {
			continue
		}
		seen[ch.Value] = true
		if ch.ID == "" {
			ch.ID = uuid.NewString()
		}
		ch.CatID = cat.ID
		deduped = append(deduped, ch)
	}
	cat.Characteristics = deduped

	for i := range cat.Images {
		if cat.Images[i].ID == "" {
			cat.Images[i].ID = uuid.NewString()
		}
		cat.Images[i].CatID = cat.ID
		cat.Images[i].Position = i
	}

	return r.db.WithContext(ctx).Create(cat).Error
}

// GetCatByID retrieves a cat report with its images and characteristics.
func (r *PostgresCatRepository) GetCatByID(ctx context.Context, id string) (*models.Cat, error) {
	var cat models.Cat
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Characteristics").
		First(&cat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// ListCats returns a filtered, paginated page of cat reports plus the total
// matching count. Filters combine with AND; characteristics matches any tag.
func (r *PostgresCatRepository) ListCats(ctx context.Context, filter models.CatFilter, page, size int) ([]models.Cat, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Cat{})

	active := true
	if filter.IsActive != nil {
		active = *filter.IsActive
	}
	q = q.Where("is_active = ?", active)

	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Location != "" {
		q = q.Where("LOWER(location) LIKE LOWER(?)", "%"+filter.Location+"%")
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.IsNeutered != nil {
		q = q.Where("is_neutered = ?", *filter.IsNeutered)
	}
	if len(filter.Characteristics) > 0 {
		q = q.Where("id IN (?)",
			r.db.Model(&models.CatCharacteristic{}).
				Select("cat_id").
				Where("value IN ?", filter.Characteristics))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.SortBy == "createdAt" || filter.SortBy == "created_at" || filter.SortBy == "" {
		if filter.SortDirection == "asc" {
			order = "created_at ASC"
		}
	}

	var cats []models.Cat
	err := q.Order(order).
		Offset((page - 1) * size).Limit(size).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Characteristics").
		Find(&cats).Error
	return cats, total, err
}

// FindNearby returns active reports with coordinates within radiusMeters of
// the center, ordered by ascending distance. Distance ties break on creation
// time descending. A bounding-box SQL prefilter keeps the candidate set
// small; the exact great-circle distance is computed in Go.
func (r *PostgresCatRepository) FindNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]NearbyCat, error) {
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(lat, lng, radiusMeters)

	var candidates []models.Cat
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLng, maxLng).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Characteristics").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyCat, 0, len(candidates))
	for _, cat := range candidates {
		d := geo.Distance(lat, lng, *cat.Latitude, *cat.Longitude)
		if d <= radiusMeters {
			nearby = append(nearby, NearbyCat{Cat: cat, DistanceMeters: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].DistanceMeters != nearby[j].DistanceMeters {
			return nearby[i].DistanceMeters < nearby[j].DistanceMeters
		}
		return nearby[i].CreatedAt.After(nearby[j].CreatedAt)
	})

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// SearchByName returns active cats whose name contains the query,
// case-insensitive, newest first.
func (r *PostgresCatRepository) SearchByName(ctx context.Context, query string, page, size int) ([]models.Cat, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Cat{}).
		Where("is_active = ?", true).
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cats []models.Cat
	err := q.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Characteristics").
		Find(&cats).Error
	return cats, total, err
}

// UpdateCat saves changes to an existing cat report.
func (r *PostgresCatRepository) UpdateCat(ctx context.Context, cat *models.Cat) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// DeactivateCat soft-deletes a report by flipping is_active and purges its
// likes and notifications in the same transaction. Comments and sightings
// stay: the row survives, so history referencing it remains readable.
func (r *PostgresCatRepository) DeactivateCat(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cat{}).
			Where("id = ? AND is_active = ?", id, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetCat, id).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("related_id = ?", id).Delete(&models.Notification{}).Error
	})
}

// CountActive returns the number of active cat reports.
func (r *PostgresCatRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Cat{}).
		Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountNewSince returns the number of active reports created at or after the
// given time.
func (r *PostgresCatRepository) CountNewSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Cat{}).
		Where("is_active = ? AND created_at >= ?", true, since).Count(&count).Error
	return count, err
}

// CountNeutered returns the number of active, neutered cat reports.
func (r *PostgresCatRepository) CountNeutered(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Cat{}).
		Where("is_active = ? AND is_neutered = ?", true, true).Count(&count).Error
	return count, err
}
