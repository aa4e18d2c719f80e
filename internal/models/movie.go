package models

import (
	"fmt"
	"strings"
	"time"
)

// Movie ids are assigned by the external catalogue the data is sourced
// from, never generated here.
type Movie struct {
	ID                   int64      `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"id"`
	OriginalLanguageCode *string    `gorm:"size:10;index;column:original_language_code" json:"original_language_code,omitempty"`
	OriginalTitle        string     `gorm:"not null;index" json:"original_title"`
	EnglishTitle         *string    `json:"english_title,omitempty"`
	Budget               *float64   `json:"budget,omitempty"`
	Revenue              *float64   `json:"revenue,omitempty"`
	Homepage             *string    `json:"homepage,omitempty"`
	Runtime              *int       `json:"runtime,omitempty"` // minutes
	ReleaseDate          *time.Time `gorm:"type:date;index" json:"release_date,omitempty"`
	ImdbRating           *float64   `gorm:"index;column:imdb_rating" json:"imdb_rating,omitempty"`
	MetaScore            *int       `gorm:"column:meta_score" json:"meta_score,omitempty"`
	Overview             *string    `gorm:"type:text" json:"overview,omitempty"`
	Certificate          *string    `json:"certificate,omitempty"`
	VoteCount            *int64     `json:"vote_count,omitempty"`
	Gross                *float64   `json:"gross,omitempty"`

	OriginalLanguage *Language           `gorm:"foreignKey:OriginalLanguageCode;references:Code" json:"original_language,omitempty"`
	Genres           []Genre             `gorm:"many2many:movie_genre" json:"genres,omitempty"`
	Companies        []ProductionCompany `gorm:"many2many:movie_production_company;joinReferences:company_id" json:"companies,omitempty"`
	Countries        []Country           `gorm:"many2many:production_country" json:"countries,omitempty"`
	SpokenLanguages  []Language          `gorm:"many2many:movie_spoken_language" json:"spoken_languages,omitempty"`
	Cast             []Person            `gorm:"many2many:movie_cast" json:"cast,omitempty"`
	Directors        []Director          `gorm:"many2many:movie_director" json:"directors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Movie) TableName() string {
	return "movie"
}

// Validate checks every column-level rule before the row reaches storage,
// so the rules hold regardless of the backing engine.
func (m *Movie) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("%w: movie_id must be a positive catalogue id", ErrConstraintViolation)
	}
	if strings.TrimSpace(m.OriginalTitle) == "" {
		return fmt.Errorf("%w: original_title must not be empty", ErrConstraintViolation)
	}
	if m.Budget != nil && *m.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative, got %v", ErrConstraintViolation, *m.Budget)
	}
	if m.Revenue != nil && *m.Revenue < 0 {
		return fmt.Errorf("%w: revenue must not be negative, got %v", ErrConstraintViolation, *m.Revenue)
	}
	if m.Gross != nil && *m.Gross < 0 {
		return fmt.Errorf("%w: gross must not be negative, got %v", ErrConstraintViolation, *m.Gross)
	}
	if m.VoteCount != nil && *m.VoteCount < 0 {
		return fmt.Errorf("%w: vote_count must not be negative, got %d", ErrConstraintViolation, *m.VoteCount)
	}
	if m.Runtime != nil && *m.Runtime <= 0 {
		return fmt.Errorf("%w: runtime must be positive, got %d", ErrConstraintViolation, *m.Runtime)
	}
	if m.ImdbRating != nil && (*m.ImdbRating < 0 || *m.ImdbRating > 10) {
		return fmt.Errorf("%w: imdb_rating must be within [0,10], got %v", ErrConstraintViolation, *m.ImdbRating)
	}
	if m.MetaScore != nil && (*m.MetaScore < 0 || *m.MetaScore > 100) {
		return fmt.Errorf("%w: meta_score must be within [0,100], got %d", ErrConstraintViolation, *m.MetaScore)
	}
	return nil
}
