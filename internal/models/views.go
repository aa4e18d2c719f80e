package models

// Row shapes of the derived read-only views. They are projections over
// the base tables, recomputed per query, never stored.

// MovieGenreRow is one row of the movies_and_genres view: a (movie,
// genre) pair with denormalized names.
type MovieGenreRow struct {
	MovieID       int64  `json:"movie_id"`
	OriginalTitle string `json:"original_title"`
	GenreID       uint   `json:"genre_id"`
	GenreName     string `json:"genre_name"`
}

// UserActivity is one row of the user_activity_summary view. Users with
// zero ratings never appear.
type UserActivity struct {
	UserID      int64   `json:"user_id"`
	RatingCount int64   `json:"rating_count"`
	AvgRating   float64 `json:"avg_rating"`
}
