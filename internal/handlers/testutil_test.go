package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meowtown/backend/internal/middleware"
	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/validators"
)

// newTestDB opens a throwaway SQLite database with all models migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("handler_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(
		&models.User{},
		&models.Cat{},
		&models.CatImage{},
		&models.CatCharacteristic{},
		&models.Sighting{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.SavedCat{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// newRequest builds an echo context for a handler call. A non-empty body is
// sent as JSON; uid, when set, plays the part of the auth middleware.
func newRequest(e *echo.Echo, method, path, body, uid string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set(middleware.ExternalUIDKey, uid)
	}
	return c, rec
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := &models.User{
		ID:          uuid.NewString(),
		ExternalUID: uuid.NewString(),
		Username:    "user-" + uuid.NewString()[:8],
		DisplayName: "Test User",
		Email:       uuid.NewString()[:8] + "@example.com",
		Role:        role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCat(t *testing.T, db *gorm.DB, reporterID string, lat, lng float64) *models.Cat {
	t.Helper()

	cat := &models.Cat{
		ID:         uuid.NewString(),
		Name:       "Mittens",
		Gender:     models.GenderUnknown,
		Location:   "Gangnam Station Exit 3",
		Latitude:   &lat,
		Longitude:  &lng,
		IsActive:   true,
		ReportedBy: reporterID,
	}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("seed cat: %v", err)
	}
	return cat
}

// decodeResponse unmarshals the recorded envelope.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return resp
}
