package models

import "time"

type Director struct {
	ID        uint      `gorm:"primaryKey;column:director_id" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Director) TableName() string {
	return "director"
}

type MovieDirector struct {
	MovieID    int64 `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"movie_id"`
	DirectorID uint  `gorm:"primaryKey;autoIncrement:false;column:director_id" json:"director_id"`
}

func (MovieDirector) TableName() string {
	return "movie_director"
}
