package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"movie-catalogue/internal/config"
	"movie-catalogue/internal/database"
	"movie-catalogue/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalogue_test.db")
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	db, err := database.New(gdb, config.DatabaseConfig{QueryTimeout: 5 * time.Second})
	require.NoError(t, err, "Failed to migrate test database")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedMovie(t *testing.T, db *database.Database, id int64, title string) {
	t.Helper()
	require.NoError(t, NewMovieRepository(db).Insert(context.Background(), &models.Movie{
		ID:            id,
		OriginalTitle: title,
	}))
}

func seedUser(t *testing.T, db *database.Database, id int64) {
	t.Helper()
	require.NoError(t, NewRatingRepository(db).EnsureUser(context.Background(), id))
}

func countRows(t *testing.T, db *database.Database, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
