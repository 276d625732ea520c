// Package testutil provides an in-memory database seeded with users and
// properties for tests across the favorite packages.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
	"github.com/tair/realestate-favorites/internal/favorite/repository"
)

// NewDB opens a private in-memory SQLite database with the favorite schema migrated
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1&_loc=UTC", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

// SeedUser inserts a user
func SeedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SeedProperty inserts a property with the given images in order
func SeedProperty(t *testing.T, db *gorm.DB, title string, images ...domain.PropertyImage) *domain.Property {
	t.Helper()

	for i := range images {
		images[i].SortOrder = i
	}
	property := &domain.Property{
		Title:        title,
		Address:      "12 Elm St",
		City:         "Austin",
		State:        "TX",
		Price:        425000,
		Bedrooms:     3,
		Bathrooms:    2,
		SquareFeet:   1800,
		ListingType:  "SALE",
		PropertyType: "HOUSE",
		Images:       images,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}
