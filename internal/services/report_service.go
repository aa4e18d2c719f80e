package services

import (
	"context"

	"movie-catalogue/internal/models"
	"movie-catalogue/internal/repository"

	"github.com/sirupsen/logrus"
)

type ReportService interface {
	// UsersWithoutHighRating returns the percentage of rating users none
	// of whose ratings reach 4.0. Users who never rated anything are not
	// part of the population. Returns models.ErrNoRatings when nobody
	// has rated at all.
	UsersWithoutHighRating(ctx context.Context) (float64, error)

	UserActivitySummary(ctx context.Context) ([]models.UserActivity, error)
	MoviesAndGenres(ctx context.Context) ([]models.MovieGenreRow, error)
	TopRatedMovies(ctx context.Context) ([]models.Movie, error)
}

type reportService struct {
	movieRepo  repository.MovieRepository
	ratingRepo repository.RatingRepository
	logger     *logrus.Logger
}

func NewReportService(movieRepo repository.MovieRepository, ratingRepo repository.RatingRepository, logger *logrus.Logger) ReportService {
	return &reportService{
		movieRepo:  movieRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

func (s *reportService) UsersWithoutHighRating(ctx context.Context) (float64, error) {
	total, err := s.ratingRepo.DistinctUserCount(ctx)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, models.ErrNoRatings
	}

	high, err := s.ratingRepo.HighRatingUserCount(ctx, models.HighRatingThreshold)
	if err != nil {
		return 0, err
	}

	percentage := 100.0 * float64(total-high) / float64(total)

	s.logger.WithFields(logrus.Fields{
		"total_users":      total,
		"high_rated_users": high,
		"percentage":       percentage,
	}).Info("Computed users without a high rating")

	return percentage, nil
}

func (s *reportService) UserActivitySummary(ctx context.Context) ([]models.UserActivity, error) {
	return s.ratingRepo.UserActivitySummary(ctx)
}

func (s *reportService) MoviesAndGenres(ctx context.Context) ([]models.MovieGenreRow, error) {
	return s.movieRepo.MoviesAndGenres(ctx)
}

func (s *reportService) TopRatedMovies(ctx context.Context) ([]models.Movie, error) {
	return s.movieRepo.TopRatedMovies(ctx)
}
