package models

import (
	"fmt"
	"math"
	"time"
)

const (
	MinRating = 0.5
	MaxRating = 5.0

	// HighRatingThreshold is the boundary used by the user report: a
	// rating of exactly 4.0 counts as high.
	HighRatingThreshold = 4.0
)

// Rating records one user's rating of one movie. The (user, movie) pair
// is the primary key; a later write for the same pair replaces the row.
type Rating struct {
	UserID     int64      `gorm:"primaryKey;autoIncrement:false;column:user_id" json:"user_id"`
	MovieID    int64      `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"movie_id"`
	Rating     float64    `gorm:"not null;column:rating" json:"rating"`
	RatingDate *time.Time `gorm:"type:date;column:rating_date" json:"rating_date,omitempty"`
}

func (Rating) TableName() string {
	return "rating"
}

// ValidRatingValue reports whether v is one of the ten permitted
// half-step values 0.5, 1.0, ... 5.0.
func ValidRatingValue(v float64) bool {
	if v < MinRating || v > MaxRating {
		return false
	}
	scaled := v * 2
	return scaled == math.Trunc(scaled)
}

func (r *Rating) Validate() error {
	if !ValidRatingValue(r.Rating) {
		return fmt.Errorf("%w: rating must be a half step within [%.1f,%.1f], got %v",
			ErrDomainViolation, MinRating, MaxRating, r.Rating)
	}
	return nil
}
