package models

import "time"

type Genre struct {
	ID        uint      `gorm:"primaryKey;column:genre_id" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:genre_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genre"
}

type MovieGenre struct {
	MovieID int64 `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"movie_id"`
	GenreID uint  `gorm:"primaryKey;autoIncrement:false;column:genre_id" json:"genre_id"`
}

func (MovieGenre) TableName() string {
	return "movie_genre"
}
