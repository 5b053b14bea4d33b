package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meowtown/backend/internal/models"
)

func TestSaveCat_OncePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSavedCatRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	cat := seedCat(t, db, user.ID)

	require.NoError(t, repo.SaveCat(ctx, user.ID, cat.ID))
	assert.ErrorIs(t, repo.SaveCat(ctx, user.ID, cat.ID), ErrDuplicate)

	saved, err := repo.IsCatSaved(ctx, user.ID, cat.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	other := seedUser(t, db)
	require.NoError(t, repo.SaveCat(ctx, other.ID, cat.ID),
		"the uniqueness is per user")
}

func TestUnsaveCat(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSavedCatRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	cat := seedCat(t, db, user.ID)

	assert.ErrorIs(t, repo.UnsaveCat(ctx, user.ID, cat.ID), ErrNotFound)

	require.NoError(t, repo.SaveCat(ctx, user.ID, cat.ID))
	require.NoError(t, repo.UnsaveCat(ctx, user.ID, cat.ID))

	saved, err := repo.IsCatSaved(ctx, user.ID, cat.ID)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestListSavedCats_RecentFirstActiveOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSavedCatRepository(db)
	cats := NewPostgresCatRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	first := seedCat(t, db, user.ID)
	second := seedCat(t, db, user.ID)
	gone := seedCat(t, db, user.ID)

	require.NoError(t, repo.SaveCat(ctx, user.ID, first.ID))
	require.NoError(t, db.Model(&models.SavedCat{}).
		Where("cat_id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, repo.SaveCat(ctx, user.ID, second.ID))
	require.NoError(t, repo.SaveCat(ctx, user.ID, gone.ID))
	require.NoError(t, cats.DeactivateCat(ctx, gone.ID))

	listed, total, err := repo.ListSavedCats(ctx, user.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "deactivated reports drop out")
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestSavedCatIDs_Batch(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSavedCatRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	saved := seedCat(t, db, user.ID)
	unsaved := seedCat(t, db, user.ID)
	require.NoError(t, repo.SaveCat(ctx, user.ID, saved.ID))

	got, err := repo.SavedCatIDs(ctx, user.ID, []string{saved.ID, unsaved.ID})
	require.NoError(t, err)
	assert.True(t, got[saved.ID])
	assert.False(t, got[unsaved.ID])

	got, err = repo.SavedCatIDs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
