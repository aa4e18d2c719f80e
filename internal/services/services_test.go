package services

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"movie-catalogue/internal/config"
	"movie-catalogue/internal/database"
	"movie-catalogue/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db      *database.Database
	catalog CatalogService
	report  ReportService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalogue_test.db")
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	db, err := database.New(gdb, config.DatabaseConfig{QueryTimeout: 5 * time.Second})
	require.NoError(t, err, "Failed to migrate test database")
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	movieRepo := repository.NewMovieRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	catalog := NewCatalogService(
		movieRepo,
		ratingRepo,
		repository.NewGenreRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewCountryRepository(db),
		repository.NewLanguageRepository(db),
		repository.NewPersonRepository(db),
		repository.NewDirectorRepository(db),
		log,
	)

	return &testEnv{
		db:      db,
		catalog: catalog,
		report:  NewReportService(movieRepo, ratingRepo, log),
	}
}
