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

type RatingRepository interface {
	EnsureUser(ctx context.Context, userID int64) error
	Upsert(ctx context.Context, userID, movieID int64, value float64, date *time.Time) error
	Get(ctx context.Context, userID, movieID int64) (*models.Rating, error)
	Delete(ctx context.Context, userID, movieID int64) error

	// UserActivitySummary is the user_activity_summary view.
	UserActivitySummary(ctx context.Context) ([]models.UserActivity, error)

	DistinctUserCount(ctx context.Context) (int64, error)
	HighRatingUserCount(ctx context.Context, threshold float64) (int64, error)
}

type ratingRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewRatingRepository(db *database.Database) RatingRepository {
	return &ratingRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *ratingRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *ratingRepository) EnsureUser(ctx context.Context, userID int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var user models.User
	return r.db.WithContext(ctx).FirstOrCreate(&user, models.User{ID: userID}).Error
}

// Upsert writes a rating with last-write-wins semantics for the (user,
// movie) pair. The user and movie must already exist; ratings never
// create either side implicitly.
func (r *ratingRepository) Upsert(ctx context.Context, userID, movieID int64, value float64, date *time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rating := models.Rating{
		UserID:     userID,
		MovieID:    movieID,
		Rating:     value,
		RatingDate: date,
	}
	if err := rating.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: user %d", models.ErrForeignKeyViolation, userID)
		}

		if err := tx.Model(&models.Movie{}).Where("movie_id = ?", movieID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: movie %d", models.ErrForeignKeyViolation, movieID)
		}

		// Atomic upsert keyed on (user_id, movie_id)
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "rating_date"}),
		}).Create(&rating).Error
	})
}

func (r *ratingRepository) Get(ctx context.Context, userID, movieID int64) (*models.Rating, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID, movieID int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: rating (%d, %d)", models.ErrNotFound, userID, movieID)
	}
	return nil
}

func (r *ratingRepository) UserActivitySummary(ctx context.Context) ([]models.UserActivity, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.UserActivity
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("user_id, COUNT(*) as rating_count, AVG(rating) as avg_rating").
		Group("user_id").
		Order("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ratingRepository) DistinctUserCount(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

// HighRatingUserCount counts distinct users holding at least one rating
// at or above the threshold. A user whose maximum is exactly the
// threshold is counted.
func (r *ratingRepository) HighRatingUserCount(ctx context.Context, threshold float64) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("rating >= ?", threshold).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
