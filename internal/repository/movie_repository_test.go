package repository

import (
	"context"
	"testing"

	"movie-catalogue/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieInsertDuplicateKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.Movie{ID: 603, OriginalTitle: "The Matrix"}))

	err := repo.Insert(ctx, &models.Movie{ID: 603, OriginalTitle: "The Matrix Reloaded"})
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
	assert.EqualValues(t, 1, countRows(t, db, &models.Movie{}))
}

func TestMovieInsertValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	runtime := 0
	err := repo.Insert(ctx, &models.Movie{ID: 1, OriginalTitle: "Broken", Runtime: &runtime})
	assert.ErrorIs(t, err, models.ErrConstraintViolation)

	err = repo.Insert(ctx, &models.Movie{ID: 2, OriginalTitle: ""})
	assert.ErrorIs(t, err, models.ErrConstraintViolation)

	assert.EqualValues(t, 0, countRows(t, db, &models.Movie{}))
}

func TestMovieInsertUnresolvedLanguage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	code := "xx"
	err := repo.Insert(ctx, &models.Movie{ID: 1, OriginalTitle: "Nowhere", OriginalLanguageCode: &code})
	assert.ErrorIs(t, err, models.ErrForeignKeyViolation)

	_, err = NewLanguageRepository(db).Upsert(ctx, "xx", "Nowhere Tongue")
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, &models.Movie{ID: 1, OriginalTitle: "Nowhere", OriginalLanguageCode: &code}))
}

func TestLinkGenreForeignKeyAndDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	genre, err := NewGenreRepository(db).Upsert(ctx, "Action")
	require.NoError(t, err)

	// Movie does not exist: no orphan row may be created
	err = repo.LinkGenre(ctx, 42, genre.ID)
	assert.ErrorIs(t, err, models.ErrForeignKeyViolation)
	assert.EqualValues(t, 0, countRows(t, db, &models.MovieGenre{}))

	seedMovie(t, db, 42, "Some Movie")

	// Genre does not exist
	err = repo.LinkGenre(ctx, 42, 9999)
	assert.ErrorIs(t, err, models.ErrForeignKeyViolation)

	require.NoError(t, repo.LinkGenre(ctx, 42, genre.ID))

	err = repo.LinkGenre(ctx, 42, genre.ID)
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
	assert.EqualValues(t, 1, countRows(t, db, &models.MovieGenre{}))
}

func TestLinkAllAssociationKinds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	seedMovie(t, db, 603, "The Matrix")

	company, err := NewCompanyRepository(db).Upsert(ctx, "Warner Bros.")
	require.NoError(t, err)
	_, err = NewCountryRepository(db).Upsert(ctx, "US", "United States of America")
	require.NoError(t, err)
	_, err = NewLanguageRepository(db).Upsert(ctx, "en", "English")
	require.NoError(t, err)
	neo := "Neo"
	person, err := NewPersonRepository(db).Upsert(ctx, "Keanu Reeves", nil)
	require.NoError(t, err)
	director, err := NewDirectorRepository(db).Upsert(ctx, "Lana Wachowski")
	require.NoError(t, err)

	require.NoError(t, repo.LinkCompany(ctx, 603, company.ID))
	require.NoError(t, repo.LinkCountry(ctx, 603, "US"))
	require.NoError(t, repo.LinkSpokenLanguage(ctx, 603, "en"))
	require.NoError(t, repo.LinkCastMember(ctx, 603, person.ID, &neo))
	require.NoError(t, repo.LinkDirector(ctx, 603, director.ID))

	assert.ErrorIs(t, repo.LinkCountry(ctx, 603, "DE"), models.ErrForeignKeyViolation)
	assert.ErrorIs(t, repo.LinkCountry(ctx, 603, "US"), models.ErrDuplicateKey)
	assert.ErrorIs(t, repo.LinkCastMember(ctx, 603, person.ID, nil), models.ErrDuplicateKey)

	movie, err := repo.FindByID(ctx, 603)
	require.NoError(t, err)
	assert.Len(t, movie.Companies, 1)
	assert.Len(t, movie.Countries, 1)
	assert.Len(t, movie.SpokenLanguages, 1)
	assert.Len(t, movie.Cast, 1)
	assert.Len(t, movie.Directors, 1)

	var castRow models.MovieCast
	require.NoError(t, db.Where("movie_id = ? AND person_id = ?", 603, person.ID).First(&castRow).Error)
	require.NotNil(t, castRow.CharacterName)
	assert.Equal(t, "Neo", *castRow.CharacterName)
}

func TestDeleteMovieCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ratings := NewRatingRepository(db)
	ctx := context.Background()

	seedMovie(t, db, 603, "The Matrix")
	seedUser(t, db, 7)

	genre, err := NewGenreRepository(db).Upsert(ctx, "Action")
	require.NoError(t, err)
	_, err = NewCountryRepository(db).Upsert(ctx, "US", "United States of America")
	require.NoError(t, err)
	require.NoError(t, repo.LinkGenre(ctx, 603, genre.ID))
	require.NoError(t, repo.LinkCountry(ctx, 603, "US"))
	require.NoError(t, ratings.Upsert(ctx, 7, 603, 4.5, nil))

	require.NoError(t, repo.Delete(ctx, 603))

	// No orphaned rows of any kind may remain
	assert.EqualValues(t, 0, countRows(t, db, &models.Movie{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.MovieGenre{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.ProductionCountry{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.Rating{}))

	// The referenced entities themselves survive
	assert.EqualValues(t, 1, countRows(t, db, &models.Genre{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.Country{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.User{}))

	assert.ErrorIs(t, repo.Delete(ctx, 603), models.ErrNotFound)
}

func TestCreateWithAssociations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	genre, err := NewGenreRepository(db).Upsert(ctx, "Action")
	require.NoError(t, err)
	person, err := NewPersonRepository(db).Upsert(ctx, "Keanu Reeves", nil)
	require.NoError(t, err)

	neo := "Neo"
	movie := models.Movie{
		ID:            603,
		OriginalTitle: "The Matrix",
		Genres:        []models.Genre{*genre},
	}
	cast := []models.MovieCast{{PersonID: person.ID, CharacterName: &neo}}
	require.NoError(t, repo.Create(ctx, &movie, cast))

	assert.EqualValues(t, 1, countRows(t, db, &models.MovieGenre{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.MovieCast{}))
}

func TestCreateWithUnresolvedAssociationRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	movie := models.Movie{
		ID:            603,
		OriginalTitle: "The Matrix",
		Genres:        []models.Genre{{ID: 9999, Name: "Ghost Genre"}},
	}
	err := repo.Create(ctx, &movie, nil)
	assert.ErrorIs(t, err, models.ErrForeignKeyViolation)

	// The whole transaction must roll back, including the movie row
	assert.EqualValues(t, 0, countRows(t, db, &models.Movie{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.MovieGenre{}))
}

func TestTopRatedMoviesBoundary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	ctx := context.Background()

	almost := 7.99
	exact := 8.0
	best := 9.3
	alsoBest := 9.3
	require.NoError(t, repo.Insert(ctx, &models.Movie{ID: 1, OriginalTitle: "Almost Great", ImdbRating: &almost}))
	require.NoError(t, repo.Insert(ctx, &models.Movie{ID: 2, OriginalTitle: "Just Great", ImdbRating: &exact}))
	require.NoError(t, repo.Insert(ctx, &models.Movie{ID: 4, OriginalTitle: "Masterpiece B", ImdbRating: &alsoBest}))
	require.NoError(t, repo.Insert(ctx, &models.Movie{ID: 3, OriginalTitle: "Masterpiece A", ImdbRating: &best}))
	require.NoError(t, repo.Insert(ctx, &models.Movie{ID: 5, OriginalTitle: "Unrated"}))

	movies, err := repo.TopRatedMovies(ctx)
	require.NoError(t, err)

	require.Len(t, movies, 3)
	// 7.99 is out, exactly 8.0 is in; ties resolved by movie id
	assert.EqualValues(t, 3, movies[0].ID)
	assert.EqualValues(t, 4, movies[1].ID)
	assert.EqualValues(t, 2, movies[2].ID)
}

func TestMoviesAndGenresView(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMovieRepository(db)
	genres := NewGenreRepository(db)
	ctx := context.Background()

	seedMovie(t, db, 1, "The Matrix")
	seedMovie(t, db, 2, "Spirited Away")

	action, err := genres.Upsert(ctx, "Action")
	require.NoError(t, err)
	scifi, err := genres.Upsert(ctx, "Science Fiction")
	require.NoError(t, err)
	animation, err := genres.Upsert(ctx, "Animation")
	require.NoError(t, err)

	require.NoError(t, repo.LinkGenre(ctx, 1, action.ID))
	require.NoError(t, repo.LinkGenre(ctx, 1, scifi.ID))
	require.NoError(t, repo.LinkGenre(ctx, 2, animation.ID))

	rows, err := repo.MoviesAndGenres(ctx)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, models.MovieGenreRow{MovieID: 1, OriginalTitle: "The Matrix", GenreID: action.ID, GenreName: "Action"}, rows[0])
	assert.Equal(t, "Science Fiction", rows[1].GenreName)
	assert.Equal(t, models.MovieGenreRow{MovieID: 2, OriginalTitle: "Spirited Away", GenreID: animation.ID, GenreName: "Animation"}, rows[2])
}
