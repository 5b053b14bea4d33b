package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meowtown/backend/internal/models"
)

// PostResolver is the slice of PostRepository the registry needs to check
// post existence without dragging the whole interface in.
type PostResolver interface {
	PostExists(ctx context.Context, id string) (bool, error)
}

// TargetRegistry validates that a (kind, id) pair addresses an existing,
// non-deleted entity. It is the one place that knows which store backs which
// kind, so likes, comments and notifications are written once instead of
// once per target kind.
type TargetRegistry struct {
	db    *gorm.DB
	posts PostResolver
}

// NewTargetRegistry creates a TargetRegistry. posts may be nil when the
// deployment runs without the community-post store; POST targets then never
// resolve.
func NewTargetRegistry(db *gorm.DB, posts PostResolver) *TargetRegistry {
	return &TargetRegistry{db: db, posts: posts}
}

// Resolve returns nil when the target exists, ErrTargetNotFound when the
// kind is unknown, the id is absent, or the entity is soft-deleted.
func (r *TargetRegistry) Resolve(ctx context.Context, target models.TargetRef) error {
	if target.ID == "" {
		return ErrTargetNotFound
	}

	switch target.Kind {
	case models.TargetCat:
		return r.exists(ctx, &models.Cat{}, "id = ? AND is_active = ?", target.ID, true)
	case models.TargetSighting:
		return r.exists(ctx, &models.Sighting{}, "id = ?", target.ID)
	case models.TargetComment:
		return r.exists(ctx, &models.Comment{}, "id = ?", target.ID)
	case models.TargetPost:
		if r.posts == nil {
			return ErrTargetNotFound
		}
		ok, err := r.posts.PostExists(ctx, target.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTargetNotFound
		}
		return nil
	default:
		return ErrTargetNotFound
	}
}

func (r *TargetRegistry) exists(ctx context.Context, model any, query string, args ...any) error {
	err := r.db.WithContext(ctx).Select("id").First(model, append([]any{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetNotFound
		}
		return err
	}
	return nil
}
