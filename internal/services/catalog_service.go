package services

import (
	"context"
	"time"

	"movie-catalogue/internal/models"
	"movie-catalogue/internal/repository"

	"github.com/sirupsen/logrus"
)

// CodeName is a coded reference entity as it appears in catalogue
// exports, e.g. "en-English".
type CodeName struct {
	Code string
	Name string
}

// CastCredit names one cast member of a movie and, when known, the
// character they played.
type CastCredit struct {
	Name          string
	Gender        *int16
	CharacterName *string
}

// MovieImport bundles a movie with all the reference data it mentions.
// Reference entities are upserted by name/code, so an import never fails
// because a genre or language was not loaded beforehand.
type MovieImport struct {
	Movie           models.Movie
	Genres          []string
	Companies       []string
	Countries       []CodeName
	SpokenLanguages []CodeName
	Cast            []CastCredit
	Directors       []string
}

type CatalogService interface {
	ImportMovie(ctx context.Context, imp *MovieImport) (*models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error

	RegisterUser(ctx context.Context, userID int64) error
	RateMovie(ctx context.Context, userID, movieID int64, value float64, date *time.Time) error
	DeleteRating(ctx context.Context, userID, movieID int64) error
}

type catalogService struct {
	movieRepo    repository.MovieRepository
	ratingRepo   repository.RatingRepository
	genreRepo    repository.GenreRepository
	companyRepo  repository.CompanyRepository
	countryRepo  repository.CountryRepository
	languageRepo repository.LanguageRepository
	personRepo   repository.PersonRepository
	directorRepo repository.DirectorRepository
	logger       *logrus.Logger
}

func NewCatalogService(
	movieRepo repository.MovieRepository,
	ratingRepo repository.RatingRepository,
	genreRepo repository.GenreRepository,
	companyRepo repository.CompanyRepository,
	countryRepo repository.CountryRepository,
	languageRepo repository.LanguageRepository,
	personRepo repository.PersonRepository,
	directorRepo repository.DirectorRepository,
	logger *logrus.Logger,
) CatalogService {
	return &catalogService{
		movieRepo:    movieRepo,
		ratingRepo:   ratingRepo,
		genreRepo:    genreRepo,
		companyRepo:  companyRepo,
		countryRepo:  countryRepo,
		languageRepo: languageRepo,
		personRepo:   personRepo,
		directorRepo: directorRepo,
		logger:       logger,
	}
}

// ImportMovie upserts every reference entity the movie mentions, then
// writes the movie row and all of its association rows in a single
// transaction. The movie row itself is never upserted: a duplicate
// movie id fails the whole import.
func (s *catalogService) ImportMovie(ctx context.Context, imp *MovieImport) (*models.Movie, error) {
	movie := imp.Movie
	if err := movie.Validate(); err != nil {
		return nil, err
	}

	for _, language := range imp.SpokenLanguages {
		if _, err := s.languageRepo.Upsert(ctx, language.Code, language.Name); err != nil {
			return nil, err
		}
	}
	// The original language may not be among the spoken ones
	if movie.OriginalLanguageCode != nil {
		if existing, err := s.languageRepo.FindByCode(ctx, *movie.OriginalLanguageCode); err != nil {
			return nil, err
		} else if existing == nil {
			if _, err := s.languageRepo.Upsert(ctx, *movie.OriginalLanguageCode, "Unknown"); err != nil {
				return nil, err
			}
		}
	}

	movie.Genres = movie.Genres[:0]
	for _, name := range imp.Genres {
		genre, err := s.genreRepo.Upsert(ctx, name)
		if err != nil {
			return nil, err
		}
		movie.Genres = append(movie.Genres, *genre)
	}

	movie.Companies = movie.Companies[:0]
	for _, name := range imp.Companies {
		company, err := s.companyRepo.Upsert(ctx, name)
		if err != nil {
			return nil, err
		}
		movie.Companies = append(movie.Companies, *company)
	}

	movie.Countries = movie.Countries[:0]
	for _, country := range imp.Countries {
		row, err := s.countryRepo.Upsert(ctx, country.Code, country.Name)
		if err != nil {
			return nil, err
		}
		movie.Countries = append(movie.Countries, *row)
	}

	movie.SpokenLanguages = movie.SpokenLanguages[:0]
	for _, language := range imp.SpokenLanguages {
		movie.SpokenLanguages = append(movie.SpokenLanguages, models.Language{Code: language.Code, Name: language.Name})
	}

	movie.Directors = movie.Directors[:0]
	for _, name := range imp.Directors {
		director, err := s.directorRepo.Upsert(ctx, name)
		if err != nil {
			return nil, err
		}
		movie.Directors = append(movie.Directors, *director)
	}

	var cast []models.MovieCast
	for _, credit := range imp.Cast {
		person, err := s.personRepo.Upsert(ctx, credit.Name, credit.Gender)
		if err != nil {
			return nil, err
		}
		cast = append(cast, models.MovieCast{PersonID: person.ID, CharacterName: credit.CharacterName})
	}

	if err := s.movieRepo.Create(ctx, &movie, cast); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"title":    movie.OriginalTitle,
		"genres":   len(imp.Genres),
		"cast":     len(imp.Cast),
	}).Info("Movie imported")

	return &movie, nil
}

func (s *catalogService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	return s.movieRepo.FindByID(ctx, id)
}

func (s *catalogService) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.movieRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("movie_id", id).Info("Movie deleted with all associations and ratings")
	return nil
}

func (s *catalogService) RegisterUser(ctx context.Context, userID int64) error {
	return s.ratingRepo.EnsureUser(ctx, userID)
}

func (s *catalogService) RateMovie(ctx context.Context, userID, movieID int64, value float64, date *time.Time) error {
	if err := s.ratingRepo.Upsert(ctx, userID, movieID, value, date); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"movie_id": movieID,
		"rating":   value,
	}).Debug("Rating stored")
	return nil
}

func (s *catalogService) DeleteRating(ctx context.Context, userID, movieID int64) error {
	return s.ratingRepo.Delete(ctx, userID, movieID)
}
