package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meowtown/backend/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, userID string, target models.TargetRef) (*models.LikeResult, error)
	HasUserLiked(ctx context.Context, userID string, target models.TargetRef) (bool, error)
	LikedTargets(ctx context.Context, userID string, kind models.TargetKind, ids []string) (map[string]bool, error)
	CountForTarget(ctx context.Context, target models.TargetRef) (int64, error)
	CountForTargets(ctx context.Context, kind models.TargetKind, ids []string) (map[string]int64, error)
	DeleteAllForTarget(ctx context.Context, tx *gorm.DB, target models.TargetRef) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// insertLike adds the like row unless it is already there. The conflict
// clause resolves the race between two concurrent toggles in the statement
// itself; a raised unique violation would abort the surrounding transaction
// on Postgres and take the recovery path down with it.
func insertLike(tx *gorm.DB, userID string, target models.TargetRef) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Like{
		ID:         uuid.NewString(),
		UserID:     userID,
		TargetType: target.Kind,
		TargetID:   target.ID,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ToggleLike flips the like state of (user, target) inside a single
// transaction and returns the new state with the recomputed total count.
// The count is always a fresh count query, never a maintained counter.
//
// Two concurrent toggles from the same user can both miss on the delete and
// race to insert; the losing insert affects zero rows and lands as "already
// liked" rather than an error.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, userID string, target models.TargetRef) (*models.LikeResult, error) {
	result := &models.LikeResult{TargetID: target.ID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, target.Kind, target.ID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			result.IsLiked = false
		} else {
			if _, err := insertLike(tx, userID, target); err != nil {
				return err
			}
			result.IsLiked = true
		}

		return tx.Model(&models.Like{}).
			Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
			Count(&result.LikeCount).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HasUserLiked checks whether the user currently likes the target.
func (r *PostgresLikeRepository) HasUserLiked(ctx context.Context, userID string, target models.TargetRef) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target.Kind, target.ID).
		Count(&count).Error
	return count > 0, err
}

// LikedTargets reports which of the given targets of one kind the user
// currently likes, in a single query. Unliked targets are absent from the
// map.
func (r *PostgresLikeRepository) LikedTargets(ctx context.Context, userID string, kind models.TargetKind, ids []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return liked, nil
	}

	var found []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, kind, ids).
		Pluck("target_id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		liked[id] = true
	}
	return liked, nil
}

// CountForTarget returns the current like count of a target.
func (r *PostgresLikeRepository) CountForTarget(ctx context.Context, target models.TargetRef) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
		Count(&count).Error
	return count, err
}

// CountForTargets returns like counts for many targets of the same kind in a
// single GROUP BY pass. Targets with no likes are absent from the map.
func (r *PostgresLikeRepository) CountForTargets(ctx context.Context, kind models.TargetKind, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	rows := []struct {
		TargetID string
		Count    int64
	}{}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Select("target_id, COUNT(*) as count").
		Where("target_type = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Count
	}
	return counts, nil
}

// DeleteAllForTarget removes every like attached to a target. It runs on the
// given transaction handle so target deletion and interaction cleanup commit
// together; pass the repository's own handle when no outer transaction exists.
func (r *PostgresLikeRepository) DeleteAllForTarget(ctx context.Context, tx *gorm.DB, target models.TargetRef) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
		Delete(&models.Like{}).Error
}
