package repositories

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meowtown/backend/internal/models"
)

// newTestDB opens a throwaway SQLite database with all models migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
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

// seedUser inserts a user row and returns it.
func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:          uuid.NewString(),
		ExternalUID: uuid.NewString(),
		Username:    "user-" + uuid.NewString()[:8],
		DisplayName: "Test User",
		Email:       uuid.NewString()[:8] + "@example.com",
		Role:        models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// seedCat inserts an active cat report owned by reporterID and returns it.
func seedCat(t *testing.T, db *gorm.DB, reporterID string) *models.Cat {
	t.Helper()

	cat := &models.Cat{
		ID:         uuid.NewString(),
		Name:       "Mittens",
		Gender:     models.GenderUnknown,
		Location:   "Gangnam Station Exit 3",
		IsActive:   true,
		ReportedBy: reporterID,
	}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("seed cat: %v", err)
	}
	return cat
}
