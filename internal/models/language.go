package models

import "time"

type Language struct {
	Code      string    `gorm:"primaryKey;size:10;column:language_code" json:"code"` // ISO 639-1 code (e.g., 'en', 'de')
	Name      string    `gorm:"not null;column:language_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Language) TableName() string {
	return "language"
}

// MovieSpokenLanguage joins a movie to each language spoken in it.
type MovieSpokenLanguage struct {
	MovieID      int64  `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"movie_id"`
	LanguageCode string `gorm:"primaryKey;size:10;column:language_code" json:"language_code"`
}

func (MovieSpokenLanguage) TableName() string {
	return "movie_spoken_language"
}
