package services

import (
	"context"
	"testing"

	"movie-catalogue/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixImport() *MovieImport {
	en := "en"
	neo := "Neo"
	trinity := "Trinity"
	female := int16(1)
	male := int16(2)

	return &MovieImport{
		Movie: models.Movie{
			ID:                   603,
			OriginalTitle:        "The Matrix",
			OriginalLanguageCode: &en,
		},
		Genres:          []string{"Action", "Science Fiction"},
		Companies:       []string{"Warner Bros.", "Village Roadshow Pictures"},
		Countries:       []CodeName{{Code: "US", Name: "United States of America"}, {Code: "AU", Name: "Australia"}},
		SpokenLanguages: []CodeName{{Code: "en", Name: "English"}},
		Cast: []CastCredit{
			{Name: "Keanu Reeves", Gender: &male, CharacterName: &neo},
			{Name: "Carrie-Anne Moss", Gender: &female, CharacterName: &trinity},
		},
		Directors: []string{"Lana Wachowski", "Lilly Wachowski"},
	}
}

func TestImportMovie(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.catalog.ImportMovie(ctx, matrixImport())
	require.NoError(t, err)

	movie, err := env.catalog.GetMovie(ctx, 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", movie.OriginalTitle)
	assert.Len(t, movie.Genres, 2)
	assert.Len(t, movie.Companies, 2)
	assert.Len(t, movie.Countries, 2)
	assert.Len(t, movie.SpokenLanguages, 1)
	assert.Len(t, movie.Cast, 2)
	assert.Len(t, movie.Directors, 2)
	require.NotNil(t, movie.OriginalLanguage)
	assert.Equal(t, "English", movie.OriginalLanguage.Name)
}

func TestImportMovieSharesReferenceEntities(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.catalog.ImportMovie(ctx, matrixImport())
	require.NoError(t, err)

	en := "en"
	neo2 := "Neo"
	male := int16(2)
	sequel := &MovieImport{
		Movie: models.Movie{
			ID:                   604,
			OriginalTitle:        "The Matrix Reloaded",
			OriginalLanguageCode: &en,
		},
		Genres:          []string{"Action", "Science Fiction"},
		Companies:       []string{"Warner Bros."},
		SpokenLanguages: []CodeName{{Code: "en", Name: "English"}},
		Cast:            []CastCredit{{Name: "Keanu Reeves", Gender: &male, CharacterName: &neo2}},
	}
	_, err = env.catalog.ImportMovie(ctx, sequel)
	require.NoError(t, err)

	var genreCount, personCount int64
	require.NoError(t, env.db.Model(&models.Genre{}).Count(&genreCount).Error)
	require.NoError(t, env.db.Model(&models.Person{}).Count(&personCount).Error)
	assert.EqualValues(t, 2, genreCount)
	assert.EqualValues(t, 2, personCount)
}

func TestImportMovieDuplicateID(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.catalog.ImportMovie(ctx, matrixImport())
	require.NoError(t, err)

	_, err = env.catalog.ImportMovie(ctx, matrixImport())
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
}

func TestImportMovieUnknownOriginalLanguage(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	code := "xx"
	imp := &MovieImport{
		Movie: models.Movie{
			ID:                   1,
			OriginalTitle:        "Mystery Film",
			OriginalLanguageCode: &code,
		},
	}
	// The language is not among the spoken ones; the import registers it
	// with a placeholder name instead of failing.
	_, err := env.catalog.ImportMovie(ctx, imp)
	require.NoError(t, err)

	var language models.Language
	require.NoError(t, env.db.Where("language_code = ?", "xx").First(&language).Error)
	assert.Equal(t, "Unknown", language.Name)
}

func TestRateAndDeleteMovie(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.catalog.ImportMovie(ctx, matrixImport())
	require.NoError(t, err)

	require.NoError(t, env.catalog.RegisterUser(ctx, 7))
	require.NoError(t, env.catalog.RateMovie(ctx, 7, 603, 4.5, nil))

	err = env.catalog.RateMovie(ctx, 7, 603, 4.3, nil)
	assert.ErrorIs(t, err, models.ErrDomainViolation)

	err = env.catalog.RateMovie(ctx, 99, 603, 4.0, nil)
	assert.ErrorIs(t, err, models.ErrForeignKeyViolation)

	require.NoError(t, env.catalog.DeleteMovie(ctx, 603))

	var associationCount, ratingCount int64
	require.NoError(t, env.db.Model(&models.MovieGenre{}).Count(&associationCount).Error)
	require.NoError(t, env.db.Model(&models.Rating{}).Count(&ratingCount).Error)
	assert.EqualValues(t, 0, associationCount)
	assert.EqualValues(t, 0, ratingCount)

	_, err = env.catalog.GetMovie(ctx, 603)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
