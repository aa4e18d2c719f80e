package models

import (
	"fmt"
	"strings"
	"time"
)

// Person is a cast member. Gender follows the source catalogue encoding:
// 1 = female, 2 = male, nil = unknown.
type Person struct {
	ID        uint      `gorm:"primaryKey;column:person_id" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Gender    *int16    `json:"gender,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Person) TableName() string {
	return "person"
}

func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: person name must not be empty", ErrConstraintViolation)
	}
	if p.Gender != nil && *p.Gender != 1 && *p.Gender != 2 {
		return fmt.Errorf("%w: person gender must be 1 or 2, got %d", ErrConstraintViolation, *p.Gender)
	}
	return nil
}

// MovieCast joins a movie to a cast member, optionally with the name of
// the character they played.
type MovieCast struct {
	MovieID       int64   `gorm:"primaryKey;autoIncrement:false;column:movie_id" json:"movie_id"`
	PersonID      uint    `gorm:"primaryKey;autoIncrement:false;column:person_id" json:"person_id"`
	CharacterName *string `gorm:"column:character_name" json:"character_name,omitempty"`
}

func (MovieCast) TableName() string {
	return "movie_cast"
}
