package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meowtown/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	ListTopLevel(ctx context.Context, target models.TargetRef, page, size int) ([]models.Comment, int64, error)
	ListReplies(ctx context.Context, parentID string) ([]models.Comment, error)
	CountForTarget(ctx context.Context, target models.TargetRef) (int64, error)
	CountForTargets(ctx context.Context, kind models.TargetKind, ids []string) (map[string]int64, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteAllForTarget(ctx context.Context, tx *gorm.DB, target models.TargetRef) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts a comment. When a parent id is set, the parent must
// exist and must comment on the same outer target; otherwise the insert
// fails with ErrParentNotFound or ErrParentTargetMismatch.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if comment.ParentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, "id = ?", *comment.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentNotFound
				}
				return err
			}
			if parent.TargetType != comment.TargetType || parent.TargetID != comment.TargetID {
				return ErrParentTargetMismatch
			}
		}
		return tx.Create(comment).Error
	})
}

// GetCommentByID retrieves a comment by id.
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListTopLevel returns a page of top-level comments on a target, oldest
// first, each with its replies loaded in creation order.
func (r *PostgresCommentRepository) ListTopLevel(ctx context.Context, target models.TargetRef, page, size int) ([]models.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("target_type = ? AND target_id = ? AND parent_id IS NULL", target.Kind, target.ID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := q.Order("created_at ASC").
		Offset((page - 1) * size).Limit(size).
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Find(&comments).Error
	return comments, total, err
}

// ListReplies returns the direct replies of a comment, oldest first.
func (r *PostgresCommentRepository) ListReplies(ctx context.Context, parentID string) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// CountForTarget returns the total comment count on a target, replies
// included.
func (r *PostgresCommentRepository) CountForTarget(ctx context.Context, target models.TargetRef) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
		Count(&count).Error
	return count, err
}

// CountForTargets returns comment counts for many targets of the same kind
// in a single GROUP BY pass. Targets with no comments are absent from the map.
func (r *PostgresCommentRepository) CountForTargets(ctx context.Context, kind models.TargetKind, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	rows := []struct {
		TargetID string
		Count    int64
	}{}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
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

// DeleteComment removes a comment, its whole reply subtree, and every like
// attached to any comment in that subtree, in one transaction. Replies can
// nest, so a reply never survives any of its ancestors.
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Walk the reply tree level by level until no new ids turn up.
		ids := []string{id}
		frontier := []string{id}
		for len(frontier) > 0 {
			var next []string
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &next).Error; err != nil {
				return err
			}
			ids = append(ids, next...)
			frontier = next
		}

		if err := tx.Where("target_type = ? AND target_id IN ?", models.TargetComment, ids).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
}

// DeleteAllForTarget removes every comment attached to a target, replies and
// comment-likes included. It runs on the given transaction handle so target
// deletion and interaction cleanup commit together; pass the repository's
// own handle when no outer transaction exists.
func (r *PostgresCommentRepository) DeleteAllForTarget(ctx context.Context, tx *gorm.DB, target models.TargetRef) error {
	if tx == nil {
		tx = r.db
	}
	tx = tx.WithContext(ctx)

	var ids []string
	if err := tx.Model(&models.Comment{}).
		Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	// Likes placed on the comments themselves go with them.
	if err := tx.Where("target_type = ? AND target_id IN ?", models.TargetComment, ids).
		Delete(&models.Like{}).Error; err != nil {
		return err
	}
	return tx.Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
		Delete(&models.Comment{}).Error
}
