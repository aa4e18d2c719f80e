package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalogue/internal/database"
	"movie-catalogue/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepository interface {
	// Insert stores a movie row alone; Create stores the row together
	// with every association carried on the struct, in one transaction.
	// Cast rows are passed separately so they can carry character names.
	Insert(ctx context.Context, movie *models.Movie) error
	Create(ctx context.Context, movie *models.Movie, cast []models.MovieCast) error
	FindByID(ctx context.Context, id int64) (*models.Movie, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error

	LinkGenre(ctx context.Context, movieID int64, genreID uint) error
	LinkCompany(ctx context.Context, movieID int64, companyID uint) error
	LinkCountry(ctx context.Context, movieID int64, countryCode string) error
	LinkSpokenLanguage(ctx context.Context, movieID int64, languageCode string) error
	LinkCastMember(ctx context.Context, movieID int64, personID uint, characterName *string) error
	LinkDirector(ctx context.Context, movieID int64, directorID uint) error

	// Derived views
	MoviesAndGenres(ctx context.Context) ([]models.MovieGenreRow, error)
	TopRatedMovies(ctx context.Context) ([]models.Movie, error)
}

type movieRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewMovieRepository(db *database.Database) MovieRepository {
	return &movieRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *movieRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *movieRepository) Insert(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertMovieTx(tx, movie)
	})
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie, cast []models.MovieCast) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertMovieTx(tx, movie); err != nil {
			return err
		}

		for _, genre := range movie.Genres {
			if err := linkTx(tx, &models.Genre{}, genre.ID,
				&models.MovieGenre{MovieID: movie.ID, GenreID: genre.ID}); err != nil {
				return err
			}
		}
		for _, company := range movie.Companies {
			if err := linkTx(tx, &models.ProductionCompany{}, company.ID,
				&models.MovieProductionCompany{MovieID: movie.ID, ProductionCompanyID: company.ID}); err != nil {
				return err
			}
		}
		for _, country := range movie.Countries {
			if err := linkTx(tx, &models.Country{}, country.Code,
				&models.ProductionCountry{MovieID: movie.ID, CountryCode: country.Code}); err != nil {
				return err
			}
		}
		for _, language := range movie.SpokenLanguages {
			if err := linkTx(tx, &models.Language{}, language.Code,
				&models.MovieSpokenLanguage{MovieID: movie.ID, LanguageCode: language.Code}); err != nil {
				return err
			}
		}
		for i := range cast {
			cast[i].MovieID = movie.ID
			if err := linkTx(tx, &models.Person{}, cast[i].PersonID, &cast[i]); err != nil {
				return err
			}
		}
		for _, director := range movie.Directors {
			if err := linkTx(tx, &models.Director{}, director.ID,
				&models.MovieDirector{MovieID: movie.ID, DirectorID: director.ID}); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertMovieTx(tx *gorm.DB, movie *models.Movie) error {
	if err := movie.Validate(); err != nil {
		return err
	}

	if movie.OriginalLanguageCode != nil {
		var count int64
		if err := tx.Model(&models.Language{}).
			Where("language_code = ?", *movie.OriginalLanguageCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: original_language_code %q", models.ErrForeignKeyViolation, *movie.OriginalLanguageCode)
		}
	}

	var count int64
	if err := tx.Model(&models.Movie{}).Where("movie_id = ?", movie.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: movie %d", models.ErrDuplicateKey, movie.ID)
	}

	return tx.Omit(clause.Associations).Create(movie).Error
}

// linkTx creates one association row after verifying both endpoints
// exist. A second link for the same pair is rejected, never ignored.
func linkTx(tx *gorm.DB, endpoint interface{}, endpointKey interface{}, row interface{}) error {
	var movieID int64
	switch v := row.(type) {
	case *models.MovieGenre:
		movieID = v.MovieID
	case *models.MovieProductionCompany:
		movieID = v.MovieID
	case *models.ProductionCountry:
		movieID = v.MovieID
	case *models.MovieSpokenLanguage:
		movieID = v.MovieID
	case *models.MovieCast:
		movieID = v.MovieID
	case *models.MovieDirector:
		movieID = v.MovieID
	default:
		return fmt.Errorf("unsupported association row type %T", row)
	}

	var count int64
	if err := tx.Model(&models.Movie{}).Where("movie_id = ?", movieID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: movie %d", models.ErrForeignKeyViolation, movieID)
	}

	if err := tx.Model(endpoint).Where(primaryKeyColumn(endpoint)+" = ?", endpointKey).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %T key %v", models.ErrForeignKeyViolation, endpoint, endpointKey)
	}

	if err := tx.Model(row).
		Where("movie_id = ? AND "+primaryKeyColumn(endpoint)+" = ?", movieID, endpointKey).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: association already exists for movie %d", models.ErrDuplicateKey, movieID)
	}

	return tx.Create(row).Error
}

func primaryKeyColumn(endpoint interface{}) string {
	switch endpoint.(type) {
	case *models.Genre:
		return "genre_id"
	case *models.ProductionCompany:
		return "company_id"
	case *models.Country:
		return "country_code"
	case *models.Language:
		return "language_code"
	case *models.Person:
		return "person_id"
	case *models.Director:
		return "director_id"
	}
	return "id"
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).
		Preload("OriginalLanguage").
		Preload("Genres").
		Preload("Companies").
		Preload("Countries").
		Preload("SpokenLanguages").
		Preload("Cast").
		Preload("Directors").
		First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: movie %d", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("movie_id = ?", id).Count(&count).Error
	return count > 0, err
}

// Delete removes the movie together with every association and rating
// row referencing it, all in one transaction, so no orphan survives a
// partial failure.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&models.MovieGenre{},
			&models.MovieProductionCompany{},
			&models.ProductionCountry{},
			&models.MovieSpokenLanguage{},
			&models.MovieCast{},
			&models.MovieDirector{},
			&models.Rating{},
		}
		for _, dependent := range dependents {
			if err := tx.Where("movie_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Movie{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: movie %d", models.ErrNotFound, id)
		}
		return nil
	})
}

func (r *movieRepository) LinkGenre(ctx context.Context, movieID int64, genreID uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkTx(tx, &models.Genre{}, genreID, &models.MovieGenre{MovieID: movieID, GenreID: genreID})
	})
}

func (r *movieRepository) LinkCompany(ctx context.Context, movieID int64, companyID uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkTx(tx, &models.ProductionCompany{}, companyID,
			&models.MovieProductionCompany{MovieID: movieID, ProductionCompanyID: companyID})
	})
}

func (r *movieRepository) LinkCountry(ctx context.Context, movieID int64, countryCode string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkTx(tx, &models.Country{}, countryCode,
			&models.ProductionCountry{MovieID: movieID, CountryCode: countryCode})
	})
}

func (r *movieRepository) LinkSpokenLanguage(ctx context.Context, movieID int64, languageCode string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkTx(tx, &models.Language{}, languageCode,
			&models.MovieSpokenLanguage{MovieID: movieID, LanguageCode: languageCode})
	})
}

func (r *movieRepository) LinkCastMember(ctx context.Context, movieID int64, personID uint, characterName *string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkTx(tx, &models.Person{}, personID,
			&models.MovieCast{MovieID: movieID, PersonID: personID, CharacterName: characterName})
	})
}

func (r *movieRepository) LinkDirector(ctx context.Context, movieID int64, directorID uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return linkTx(tx, &models.Director{}, directorID,
			&models.MovieDirector{MovieID: movieID, DirectorID: directorID})
	})
}

// MoviesAndGenres is the movies_and_genres view: one row per (movie,
// genre) pair with denormalized names.
func (r *movieRepository) MoviesAndGenres(ctx context.Context) ([]models.MovieGenreRow, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.MovieGenreRow
	err := r.db.WithContext(ctx).Model(&models.MovieGenre{}).
		Select("movie_genre.movie_id, movie.original_title, movie_genre.genre_id, genre.genre_name").
		Joins("JOIN movie ON movie.movie_id = movie_genre.movie_id").
		Joins("JOIN genre ON genre.genre_id = movie_genre.genre_id").
		Order("movie_genre.movie_id, genre.genre_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopRatedMovies is the top_rated_movies view: movies with an IMDB
// rating of at least 8.0, best first, ties broken by movie id.
func (r *movieRepository) TopRatedMovies(ctx context.Context) ([]models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	err := r.db.WithContext(ctx).
		Where("imdb_rating >= ?", 8.0).
		Order("imdb_rating DESC, movie_id ASC").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}
