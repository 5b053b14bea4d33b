package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meowtown/backend/internal/models"
)

// stubPostResolver resolves a fixed set of post ids.
type stubPostResolver struct {
	known map[string]bool
}

func (s *stubPostResolver) PostExists(_ context.Context, id string) (bool, error) {
	return s.known[id], nil
}

func TestTargetRegistry_Resolve(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	cat := seedCat(t, db, user.ID)
	sighting := &models.Sighting{CatID: cat.ID, ReporterID: user.ID, Location: "x"}
	require.NoError(t, NewPostgresSightingRepository(db).CreateSighting(ctx, sighting))
	comment := seedComment(t, db, user.ID, models.TargetRef{Kind: models.TargetCat, ID: cat.ID}, nil, "hello")

	registry := NewTargetRegistry(db, &stubPostResolver{known: map[string]bool{"known-post": true}})

	t.Run("existing entities resolve", func(t *testing.T) {
		assert.NoError(t, registry.Resolve(ctx, models.TargetRef{Kind: models.TargetCat, ID: cat.ID}))
		assert.NoError(t, registry.Resolve(ctx, models.TargetRef{Kind: models.TargetSighting, ID: sighting.ID}))
		assert.NoError(t, registry.Resolve(ctx, models.TargetRef{Kind: models.TargetComment, ID: comment.ID}))
		assert.NoError(t, registry.Resolve(ctx, models.TargetRef{Kind: models.TargetPost, ID: "known-post"}))
	})

	t.Run("missing ids do not resolve", func(t *testing.T) {
		for _, kind := range []models.TargetKind{
			models.TargetCat, models.TargetSighting, models.TargetComment, models.TargetPost,
		} {
			err := registry.Resolve(ctx, models.TargetRef{Kind: kind, ID: uuid.NewString()})
			assert.ErrorIs(t, err, ErrTargetNotFound, "kind %s", kind)
		}
	})

	t.Run("deactivated cat does not resolve", func(t *testing.T) {
		require.NoError(t, NewPostgresCatRepository(db).DeactivateCat(ctx, cat.ID))
		err := registry.Resolve(ctx, models.TargetRef{Kind: models.TargetCat, ID: cat.ID})
		assert.ErrorIs(t, err, ErrTargetNotFound)
	})

	t.Run("unknown kind and empty id", func(t *testing.T) {
		assert.ErrorIs(t, registry.Resolve(ctx, models.TargetRef{Kind: "STORY", ID: "x"}), ErrTargetNotFound)
		assert.ErrorIs(t, registry.Resolve(ctx, models.TargetRef{Kind: models.TargetCat, ID: ""}), ErrTargetNotFound)
	})
}

func TestTargetRegistry_NilPostResolver(t *testing.T) {
	db := newTestDB(t)
	registry := NewTargetRegistry(db, nil)

	err := registry.Resolve(context.Background(), models.TargetRef{Kind: models.TargetPost, ID: "any"})
	assert.ErrorIs(t, err, ErrTargetNotFound)
}
