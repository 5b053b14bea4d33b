package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

func newCatHandler(db *gorm.DB) *CatHandler {
	return NewCatHandler(
		repositories.NewPostgresCatRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresNotificationRepository(db),
		repositories.NewTargetRegistry(db, nil),
	)
}

func TestCreateCat_Handler(t *testing.T) {
	db := newTestDB(t)
	h := newCatHandler(db)
	e := newTestEcho()
	user := seedUser(t, db, models.RoleUser)

	t.Run("valid report created", func(t *testing.T) {
		body := `{"name":"Cheese","location":"Hongdae alley","gender":"MALE","characteristics":["orange tabby"]}`
		c, rec := newRequest(e, http.MethodPost, "/api/v1/cats", body, user.ExternalUID)

		require.NoError(t, h.CreateCat(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		body := `{"location":"somewhere"}`
		c, rec := newRequest(e, http.MethodPost, "/api/v1/cats", body, user.ExternalUID)

		require.NoError(t, h.CreateCat(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
	})

	t.Run("unauthenticated rejected", func(t *testing.T) {
		body := `{"name":"X","location":"Y"}`
		c, rec := newRequest(e, http.MethodPost, "/api/v1/cats", body, "")

		require.NoError(t, h.CreateCat(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unregistered identity rejected", func(t *testing.T) {
		body := `{"name":"X","location":"Y"}`
		c, rec := newRequest(e, http.MethodPost, "/api/v1/cats", body, "never-registered")

		require.NoError(t, h.CreateCat(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestToggleLike_Handler(t *testing.T) {
	db := newTestDB(t)
	h := newCatHandler(db)
	e := newTestEcho()

	owner := seedUser(t, db, models.RoleUser)
	fan := seedUser(t, db, models.RoleUser)
	cat := seedCat(t, db, owner.ID, 37.50, 127.00)

	like := func(uid, catID string) (int, map[string]any) {
		c, rec := newRequest(e, http.MethodPost, "/api/v1/cats/"+catID+"/like", "", uid)
		c.SetParamNames("id")
		c.SetParamValues(catID)
		require.NoError(t, h.ToggleLike(c))
		resp := decodeResponse(t, rec)
		data, _ := resp.Data.(map[string]any)
		return rec.Code, data
	}

	code, data := like(fan.ExternalUID, cat.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data["isLiked"])
	assert.Equal(t, float64(1), data["likeCount"])

	// A like from someone else notifies the reporter.
	var notifCount int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", owner.ID, models.NotificationLike).
		Count(&notifCount).Error)
	assert.Equal(t, int64(1), notifCount)

	code, data = like(fan.ExternalUID, cat.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, data["isLiked"])
	assert.Equal(t, float64(0), data["likeCount"])

	// Liking your own report never notifies.
	_, _ = like(owner.ExternalUID, cat.ID)
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", owner.ID, models.NotificationLike).
		Count(&notifCount).Error)
	assert.Equal(t, int64(1), notifCount)

	t.Run("unknown cat is a 404", func(t *testing.T) {
		code, _ := like(fan.ExternalUID, uuid.NewString())
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestFindNearby_Handler(t *testing.T) {
	db := newTestDB(t)
	h := newCatHandler(db)
	e := newTestEcho()

	user := seedUser(t, db, models.RoleUser)
	seedCat(t, db, user.ID, 37.50, 127.00)
	seedCat(t, db, user.ID, 37.51, 127.02)

	t.Run("default radius filters far cats", func(t *testing.T) {
		c, rec := newRequest(e, http.MethodGet, "/api/v1/cats/nearby?lat=37.50&lng=127.00", "", user.ExternalUID)
		require.NoError(t, h.FindNearby(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 1)
	})

	t.Run("wider radius includes both", func(t *testing.T) {
		c, rec := newRequest(e, http.MethodGet, "/api/v1/cats/nearby?lat=37.50&lng=127.00&radius=3000", "", user.ExternalUID)
		require.NoError(t, h.FindNearby(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 2)
	})

	t.Run("bad coordinates rejected", func(t *testing.T) {
		for _, q := range []string{
			"lat=91&lng=127.00",
			"lat=37.50&lng=181",
			"lat=abc&lng=127.00",
			"lng=127.00",
			"lat=37.50&lng=127.00&radius=-5",
		} {
			c, rec := newRequest(e, http.MethodGet, "/api/v1/cats/nearby?"+q, "", user.ExternalUID)
			require.NoError(t, h.FindNearby(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", q)
		}
	})
}

func TestListCats_Handler_ParamValidation(t *testing.T) {
	db := newTestDB(t)
	h := newCatHandler(db)
	e := newTestEcho()

	user := seedUser(t, db, models.RoleUser)
	seedCat(t, db, user.ID, 37.50, 127.00)

	list := func(query string) int {
		c, rec := newRequest(e, http.MethodGet, "/api/v1/cats?"+query, "", user.ExternalUID)
		require.NoError(t, h.ListCats(c))
		return rec.Code
	}

	t.Run("malformed paging rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, list("page=abc"))
		assert.Equal(t, http.StatusBadRequest, list("size=zz"))
	})

	t.Run("out-of-range paging clamped", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, list("page=0&size=500"))
	})

	t.Run("unknown sort fields rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, list("sortBy=name"))
		assert.Equal(t, http.StatusBadRequest, list("sortDirection=sideways"))
	})

	t.Run("recognized sort accepted", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, list("sortBy=createdAt&sortDirection=asc"))
	})
}

func TestDeleteCat_Handler_Ownership(t *testing.T) {
	db := newTestDB(t)
	h := newCatHandler(db)
	e := newTestEcho()

	owner := seedUser(t, db, models.RoleUser)
	stranger := seedUser(t, db, models.RoleUser)
	moderator := seedUser(t, db, models.RoleModerator)

	del := func(uid, catID string) int {
		c, rec := newRequest(e, http.MethodDelete, "/api/v1/cats/"+catID, "", uid)
		c.SetParamNames("id")
		c.SetParamValues(catID)
		require.NoError(t, h.DeleteCat(c))
		return rec.Code
	}

	cat := seedCat(t, db, owner.ID, 37.50, 127.00)
	assert.Equal(t, http.StatusForbidden, del(stranger.ExternalUID, cat.ID))
	assert.Equal(t, http.StatusOK, del(owner.ExternalUID, cat.ID))

	other := seedCat(t, db, owner.ID, 37.50, 127.00)
	assert.Equal(t, http.StatusOK, del(moderator.ExternalUID, other.ID),
		"moderators may remove any report")
}
