package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meowtown/backend/internal/models"
)

func TestCreateSighting_DefaultsSightingTime(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSightingRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	cat := seedCat(t, db, user.ID)

	sighting := &models.Sighting{
		CatID:      cat.ID,
		ReporterID: user.ID,
		Location:   "behind the bakery",
	}
	require.NoError(t, repo.CreateSighting(ctx, sighting))
	assert.NotEmpty(t, sighting.ID)
	assert.False(t, sighting.SightingTime.IsZero())

	explicit := time.Date(2026, 8, 20, 7, 30, 0, 0, time.UTC)
	withTime := &models.Sighting{
		CatID:        cat.ID,
		ReporterID:   user.ID,
		Location:     "park bench",
		SightingTime: explicit,
	}
	require.NoError(t, repo.CreateSighting(ctx, withTime))
	got, err := repo.GetSightingByID(ctx, withTime.ID)
	require.NoError(t, err)
	assert.True(t, got.SightingTime.Equal(explicit))
}

func TestListByCatID_MostRecentSightingFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSightingRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	cat := seedCat(t, db, user.ID)
	otherCat := seedCat(t, db, user.ID)

	old := &models.Sighting{
		CatID: cat.ID, ReporterID: user.ID, Location: "a",
		SightingTime: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, repo.CreateSighting(ctx, old))
	recent := &models.Sighting{
		CatID: cat.ID, ReporterID: user.ID, Location: "b",
		SightingTime: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.CreateSighting(ctx, recent))
	require.NoError(t, repo.CreateSighting(ctx, &models.Sighting{
		CatID: otherCat.ID, ReporterID: user.ID, Location: "c",
	}))

	sightings, total, err := repo.ListByCatID(ctx, cat.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, sightings, 2)
	assert.Equal(t, recent.ID, sightings[0].ID)
	assert.Equal(t, old.ID, sightings[1].ID)
}

func TestVerifySighting_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSightingRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	cat := seedCat(t, db, user.ID)
	sighting := &models.Sighting{CatID: cat.ID, ReporterID: user.ID, Location: "x"}
	require.NoError(t, repo.CreateSighting(ctx, sighting))

	got, err := repo.VerifySighting(ctx, sighting.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	again, err := repo.VerifySighting(ctx, sighting.ID)
	require.NoError(t, err)
	assert.True(t, again.IsVerified)

	_, err = repo.VerifySighting(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSighting_PurgesInteractions(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSightingRepository(db)
	likes := NewPostgresLikeRepository(db)
	comments := NewPostgresCommentRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	cat := seedCat(t, db, user.ID)
	sighting := &models.Sighting{CatID: cat.ID, ReporterID: user.ID, Location: "x"}
	require.NoError(t, repo.CreateSighting(ctx, sighting))
	target := models.TargetRef{Kind: models.TargetSighting, ID: sighting.ID}

	fan := seedUser(t, db)
	_, err := likes.ToggleLike(ctx, fan.ID, target)
	require.NoError(t, err)
	seedComment(t, db, fan.ID, target, nil, "I saw it too")
	seedNotification(t, db, user.ID, sighting.ID)

	require.NoError(t, repo.DeleteSighting(ctx, sighting.ID))

	_, err = repo.GetSightingByID(ctx, sighting.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	likeCount, err := likes.CountForTarget(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likeCount)

	commentCount, err := comments.CountForTarget(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, int64(0), commentCount)

	var notifCount int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("related_id = ?", sighting.ID).Count(&notifCount).Error)
	assert.Equal(t, int64(0), notifCount)

	assert.ErrorIs(t, repo.DeleteSighting(ctx, sighting.ID), ErrNotFound)
}
