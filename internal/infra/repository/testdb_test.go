package repository_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single
// connection keeps concurrent writers serialized the way the busy
// handler would, without lock errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Category{},
		&model.MenuItem{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderItem{},
	))

	return db
}

func seedMenuItem(t *testing.T, db *gorm.DB, item *model.MenuItem) {
	t.Helper()

	if item.CategoryID == 0 {
		cat := model.Category{Slug: "mains", Title: "Mains"}
		require.NoError(t, db.Where("slug = ?", cat.Slug).FirstOrCreate(&cat).Error)
		item.CategoryID = cat.ID
	}
	require.NoError(t, db.Create(item).Error)
}
